package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/pointer"
)

func Test_WaitCondition_DeploymentReady(t *testing.T) {
	req := require.New(t)

	d := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "ollama", Namespace: "ai-chat", Generation: 2},
		Spec:       appsv1.DeploymentSpec{Replicas: pointer.Int32(1)},
		Status: appsv1.DeploymentStatus{
			ObservedGeneration:  2,
			ReadyReplicas:       1,
			UnavailableReplicas: 0,
		},
	}

	client := NewKubeClient(fake.NewSimpleClientset(d))

	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "ollama", Namespace: "ai-chat"}, DeploymentAvailable, time.Minute)
	req.NoError(err)
	assert.Equal(t, WaitReady, outcome.State)
	assert.Equal(t, "1/1 replicas ready", outcome.LastStatus)
}

func Test_WaitCondition_DeploymentTimesOut(t *testing.T) {
	req := require.New(t)

	d := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "ollama", Namespace: "ai-chat", Generation: 2},
		Spec:       appsv1.DeploymentSpec{Replicas: pointer.Int32(1)},
		Status: appsv1.DeploymentStatus{
			ObservedGeneration:  2,
			ReadyReplicas:       0,
			UnavailableReplicas: 1,
		},
	}

	client := NewKubeClient(fake.NewSimpleClientset(d))

	// a zero timeout turns the wait into a single check
	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "ollama", Namespace: "ai-chat"}, DeploymentAvailable, 0)
	req.NoError(err)
	assert.Equal(t, WaitTimedOut, outcome.State)
	assert.Equal(t, "0/1 replicas ready", outcome.LastStatus)
}

func Test_WaitCondition_TimeoutIsHardBound(t *testing.T) {
	req := require.New(t)

	d := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "ollama", Namespace: "ai-chat", Generation: 1},
		Spec:       appsv1.DeploymentSpec{Replicas: pointer.Int32(1)},
	}

	// default 2s poll interval; the wait must still return at the 50ms
	// deadline rather than sleeping a full interval past it
	client := NewKubeClient(fake.NewSimpleClientset(d))

	start := time.Now()
	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "ollama", Namespace: "ai-chat"}, DeploymentAvailable, 50*time.Millisecond)
	elapsed := time.Since(start)

	req.NoError(err)
	assert.Equal(t, WaitTimedOut, outcome.State)
	assert.Less(t, elapsed, time.Second)
}

func Test_WaitCondition_DeploymentProgressDeadlineExceeded(t *testing.T) {
	req := require.New(t)

	d := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "ai-chat", Generation: 1},
		Spec:       appsv1.DeploymentSpec{Replicas: pointer.Int32(1)},
		Status: appsv1.DeploymentStatus{
			ObservedGeneration: 1,
			Conditions: []appsv1.DeploymentCondition{
				{
					Type:    appsv1.DeploymentProgressing,
					Status:  corev1.ConditionFalse,
					Reason:  "ProgressDeadlineExceeded",
					Message: "ReplicaSet has timed out progressing",
				},
			},
		},
	}

	client := NewKubeClient(fake.NewSimpleClientset(d))

	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "web", Namespace: "ai-chat"}, DeploymentAvailable, time.Minute)
	req.NoError(err)
	assert.Equal(t, WaitErrorObserved, outcome.State)
	assert.Contains(t, outcome.LastStatus, "progress deadline exceeded")
}

func Test_WaitCondition_JobComplete(t *testing.T) {
	req := require.New(t)

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: "model-pull", Namespace: "ai-chat"},
		Status: batchv1.JobStatus{
			Succeeded: 1,
			Conditions: []batchv1.JobCondition{
				{Type: batchv1.JobComplete, Status: corev1.ConditionTrue},
			},
		},
	}

	client := NewKubeClient(fake.NewSimpleClientset(job))

	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Job", Name: "model-pull", Namespace: "ai-chat"}, JobComplete, time.Minute)
	req.NoError(err)
	assert.Equal(t, WaitReady, outcome.State)
}

func Test_WaitCondition_JobFailed(t *testing.T) {
	req := require.New(t)

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: "model-pull", Namespace: "ai-chat"},
		Status: batchv1.JobStatus{
			Failed: 3,
			Conditions: []batchv1.JobCondition{
				{Type: batchv1.JobFailed, Status: corev1.ConditionTrue, Message: "BackoffLimitExceeded"},
			},
		},
	}

	client := NewKubeClient(fake.NewSimpleClientset(job))

	outcome, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Job", Name: "model-pull", Namespace: "ai-chat"}, JobComplete, time.Minute)
	req.NoError(err)
	assert.Equal(t, WaitErrorObserved, outcome.State)
	assert.Contains(t, outcome.LastStatus, "BackoffLimitExceeded")
}

func Test_WaitCondition_MissingTargetIsAnError(t *testing.T) {
	client := NewKubeClient(fake.NewSimpleClientset())

	_, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "nope", Namespace: "ai-chat"}, DeploymentAvailable, time.Minute)
	require.Error(t, err)
}

func Test_WaitCondition_UnknownCondition(t *testing.T) {
	client := NewKubeClient(fake.NewSimpleClientset())

	_, err := client.WaitCondition(context.Background(), ObjectRef{Kind: "Deployment", Name: "web", Namespace: "ai-chat"}, ConditionKind("Bogus"), time.Minute)
	require.Error(t, err)
}

func Test_WaitCondition_ContextCancelStopsWait(t *testing.T) {
	req := require.New(t)

	d := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "ollama", Namespace: "ai-chat", Generation: 1},
		Spec:       appsv1.DeploymentSpec{Replicas: pointer.Int32(1)},
	}

	client := NewKubeClient(fake.NewSimpleClientset(d))
	client.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.WaitCondition(ctx, ObjectRef{Kind: "Deployment", Name: "ollama", Namespace: "ai-chat"}, DeploymentAvailable, time.Minute)
	req.Error(err)
	assert.Contains(t, err.Error(), "cancelled")
}
