package cluster

import (
	"context"
	"time"

	"k8s.io/client-go/kubernetes"
)

// Client is the capability the deployment orchestrator needs from the
// cluster control plane. All mutating calls affect live cluster state;
// nothing is cached between calls.
type Client interface {
	// Apply creates the object or updates it to the desired spec.
	// Applying the same object twice converges to the same end-state.
	Apply(ctx context.Context, obj Object) error

	// WaitCondition polls the target object until the condition is
	// satisfied, the object reports a terminal failure, or the timeout
	// elapses. The returned error is reserved for cluster access
	// problems; timeouts and observed failures are outcomes, not errors.
	WaitCondition(ctx context.Context, target ObjectRef, condition ConditionKind, timeout time.Duration) (WaitOutcome, error)

	// DeleteNamespace removes the namespace and, transitively, every
	// object scoped to it. Returns false if the namespace did not exist.
	DeleteNamespace(ctx context.Context, namespace string) (bool, error)

	// Status returns a snapshot of all deployed objects in the namespace.
	Status(ctx context.Context, namespace string) (*TopologySnapshot, error)

	// PodDiagnostics returns a best-effort description of pods matching
	// the selector, including recent logs where available.
	PodDiagnostics(ctx context.Context, namespace string, selector string) (string, error)
}

// KubeClient implements Client against a real (or fake) clientset.
type KubeClient struct {
	clientset    kubernetes.Interface
	pollInterval time.Duration
}

var _ Client = (*KubeClient)(nil)

func NewKubeClient(clientset kubernetes.Interface) *KubeClient {
	return &KubeClient{
		clientset:    clientset,
		pollInterval: time.Second * 2,
	}
}
