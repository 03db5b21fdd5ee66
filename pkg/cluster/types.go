package cluster

import (
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// Object is any Kubernetes API object the client knows how to apply.
type Object interface {
	runtime.Object
	metav1.Object
}

// ObjectRef identifies a single namespaced object.
type ObjectRef struct {
	Kind      string
	Name      string
	Namespace string
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s/%s", strings.ToLower(r.Kind), r.Name)
}

type ConditionKind string

const (
	// DeploymentAvailable is satisfied when all desired replicas are ready.
	DeploymentAvailable ConditionKind = "DeploymentAvailable"
	// JobComplete is satisfied when the job reports the Complete condition.
	JobComplete ConditionKind = "JobComplete"
)

type WaitState string

const (
	WaitReady    WaitState = "Ready"
	WaitTimedOut WaitState = "TimedOut"
	// WaitErrorObserved means the object reported a terminal failure,
	// not just "not yet ready".
	WaitErrorObserved WaitState = "ErrorObserved"
)

// WaitOutcome reports how a condition wait ended, along with the last
// status observed on the target object for diagnostics.
type WaitOutcome struct {
	State      WaitState
	LastStatus string
}

// ResourceStatus is the observed state of one deployed object.
type ResourceStatus struct {
	Kind   string
	Name   string
	Status string
}

// TopologySnapshot is a point-in-time report of all objects in the
// deployment namespace and their observed status.
type TopologySnapshot struct {
	Namespace string
	Resources []ResourceStatus
}
