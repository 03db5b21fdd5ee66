package types

import (
	"time"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
)

// DeployOptions is the full, explicit configuration for one deploy run.
// Nothing is read from ambient process state.
type DeployOptions struct {
	Namespace        string
	Hostname         string
	IngressClass     string
	WebImage         string
	ModelServerImage string
	Model            string
	ModelVolumeSize  string

	ModelServerTimeout time.Duration
	ModelPullTimeout   time.Duration
	WebTimeout         time.Duration

	// StrictModelPull aborts the plan when the model pull gate times
	// out instead of warning and continuing.
	StrictModelPull bool
}

// TimeoutPolicy declares what a gate timeout does to the rest of the
// plan. The source scripts warned and continued for every gate; making
// the policy part of the gate keeps that decision visible per stage.
type TimeoutPolicy string

const (
	ContinueOnTimeout TimeoutPolicy = "continue"
	AbortOnTimeout    TimeoutPolicy = "abort"
)

// Gate is a timeout-bounded wait on a cluster condition between stages.
type Gate struct {
	Condition cluster.ConditionKind
	Target    cluster.ObjectRef
	Timeout   time.Duration
	OnTimeout TimeoutPolicy

	// DiagnosticSelector selects the pods to describe when the gate
	// times out or observes a failure.
	DiagnosticSelector string
}

// Stage is one ordered unit of the deployment plan: the objects applied
// together plus an optional readiness gate. Stages form a strict total
// order; later stages reference names established by earlier ones.
type Stage struct {
	Name    string
	Objects []cluster.Object
	Gate    *Gate
}

type StageResult string

const (
	StageApplied  StageResult = "Applied"
	StageReady    StageResult = "Ready"
	StageTimedOut StageResult = "TimedOut"
	StageFailed   StageResult = "Failed"
)

// StageOutcome is the per-stage result of a run.
type StageOutcome struct {
	Stage      string
	Result     StageResult
	LastStatus string
	Err        error
}

// Report aggregates stage outcomes and the final topology snapshot.
// Produced fresh per run, never persisted; the cluster itself is the
// only durable record.
type Report struct {
	Outcomes []StageOutcome
	Snapshot *cluster.TopologySnapshot
}

// Outcome returns the recorded outcome for the named stage.
func (r *Report) Outcome(stage string) (StageOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Stage == stage {
			return o, true
		}
	}
	return StageOutcome{}, false
}

// HasWarnings reports whether any gate timed out without aborting.
func (r *Report) HasWarnings() bool {
	for _, o := range r.Outcomes {
		if o.Result == StageTimedOut {
			return true
		}
	}
	return false
}
