package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// conditionCheck is one poll of a gate target. ready and failed are
// mutually exclusive; status carries the last-observed object state for
// diagnostics.
type conditionCheck struct {
	ready  bool
	failed bool
	status string
}

// WaitCondition polls the target until the condition resolves or the
// timeout elapses. The timeout is a hard upper bound on wall-clock wait;
// cancelling the context stops the wait without affecting the object.
func (c *KubeClient) WaitCondition(ctx context.Context, target ObjectRef, condition ConditionKind, timeout time.Duration) (WaitOutcome, error) {
	start := time.Now()

	for {
		var check conditionCheck
		var err error

		switch condition {
		case DeploymentAvailable:
			check, err = c.checkDeploymentAvailable(ctx, target)
		case JobComplete:
			check, err = c.checkJobComplete(ctx, target)
		default:
			return WaitOutcome{}, errors.Errorf("unknown condition kind %q", condition)
		}

		if err != nil {
			return WaitOutcome{}, err
		}

		if check.ready {
			return WaitOutcome{State: WaitReady, LastStatus: check.status}, nil
		}
		if check.failed {
			return WaitOutcome{State: WaitErrorObserved, LastStatus: check.status}, nil
		}

		remaining := timeout - time.Since(start)
		if remaining <= 0 {
			return WaitOutcome{State: WaitTimedOut, LastStatus: check.status}, nil
		}

		// never sleep past the deadline; the final poll happens at the
		// timeout boundary
		interval := c.pollInterval
		if remaining < interval {
			interval = remaining
		}

		select {
		case <-ctx.Done():
			return WaitOutcome{}, errors.Wrapf(ctx.Err(), "wait for %s cancelled", target)
		case <-time.After(interval):
		}
	}
}

func (c *KubeClient) checkDeploymentAvailable(ctx context.Context, target ObjectRef) (conditionCheck, error) {
	d, err := c.clientset.AppsV1().Deployments(target.Namespace).Get(ctx, target.Name, metav1.GetOptions{})
	if err != nil {
		return conditionCheck{}, errors.Wrapf(err, "failed to get deployment %s", target.Name)
	}

	var desired int32 = 1
	if d.Spec.Replicas != nil {
		desired = *d.Spec.Replicas
	}

	status := fmt.Sprintf("%d/%d replicas ready", d.Status.ReadyReplicas, desired)

	for _, cond := range d.Status.Conditions {
		if cond.Type == appsv1.DeploymentReplicaFailure && cond.Status == corev1.ConditionTrue {
			return conditionCheck{failed: true, status: fmt.Sprintf("replica failure: %s", cond.Message)}, nil
		}
		if cond.Type == appsv1.DeploymentProgressing && cond.Status == corev1.ConditionFalse && cond.Reason == "ProgressDeadlineExceeded" {
			return conditionCheck{failed: true, status: fmt.Sprintf("progress deadline exceeded: %s", cond.Message)}, nil
		}
	}

	if d.Status.ObservedGeneration == d.ObjectMeta.Generation && d.Status.ReadyReplicas == desired && d.Status.UnavailableReplicas == 0 {
		return conditionCheck{ready: true, status: status}, nil
	}

	return conditionCheck{status: status}, nil
}

func (c *KubeClient) checkJobComplete(ctx context.Context, target ObjectRef) (conditionCheck, error) {
	job, err := c.clientset.BatchV1().Jobs(target.Namespace).Get(ctx, target.Name, metav1.GetOptions{})
	if err != nil {
		return conditionCheck{}, errors.Wrapf(err, "failed to get job %s", target.Name)
	}

	status := fmt.Sprintf("active=%d succeeded=%d failed=%d", job.Status.Active, job.Status.Succeeded, job.Status.Failed)

	for _, cond := range job.Status.Conditions {
		if cond.Status != corev1.ConditionTrue {
			continue
		}
		switch cond.Type {
		case batchv1.JobComplete:
			return conditionCheck{ready: true, status: status}, nil
		case batchv1.JobFailed:
			return conditionCheck{failed: true, status: fmt.Sprintf("job failed: %s", cond.Message)}, nil
		}
	}

	return conditionCheck{status: status}, nil
}
