package deploy

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

// Orchestrator walks the stage list in order, applying each stage's
// objects and holding at readiness gates. A failed apply or an observed
// failure aborts the plan; a gate timeout is a warning unless the gate
// says otherwise. Atomicity is per stage: a failed run leaves only
// fully-applied stages behind.
type Orchestrator struct {
	client    cluster.Client
	plan      []types.Stage
	namespace string
	log       *logger.CLILogger
}

func NewOrchestrator(client cluster.Client, plan []types.Stage, namespace string, log *logger.CLILogger) *Orchestrator {
	return &Orchestrator{
		client:    client,
		plan:      plan,
		namespace: namespace,
		log:       log,
	}
}

// Run executes the plan. The returned report always covers every stage
// that was attempted, even when Run also returns an error.
func (o *Orchestrator) Run(ctx context.Context) (*types.Report, error) {
	report := &types.Report{}

	for _, stage := range o.plan {
		o.log.ActionWithSpinner("Applying %s", stage.Name)

		for _, obj := range stage.Objects {
			if err := o.client.Apply(ctx, obj); err != nil {
				o.log.FinishSpinnerWithError()
				err = errors.Wrapf(err, "failed to apply %s in stage %s", describeObject(obj), stage.Name)
				report.Outcomes = append(report.Outcomes, types.StageOutcome{
					Stage:  stage.Name,
					Result: types.StageFailed,
					Err:    err,
				})
				return report, err
			}
		}
		o.log.FinishSpinner()

		if stage.Gate == nil {
			report.Outcomes = append(report.Outcomes, types.StageOutcome{
				Stage:  stage.Name,
				Result: types.StageApplied,
			})
			continue
		}

		gate := stage.Gate
		o.log.ActionWithSpinner("Waiting for %s (%s)", gate.Target, gate.Condition)

		outcome, err := o.client.WaitCondition(ctx, gate.Target, gate.Condition, gate.Timeout)
		if err != nil {
			o.log.FinishSpinnerWithError()
			err = errors.Wrapf(err, "failed waiting for %s in stage %s", gate.Target, stage.Name)
			report.Outcomes = append(report.Outcomes, types.StageOutcome{
				Stage:  stage.Name,
				Result: types.StageFailed,
				Err:    err,
			})
			return report, err
		}

		switch outcome.State {
		case cluster.WaitReady:
			o.log.FinishSpinner()
			report.Outcomes = append(report.Outcomes, types.StageOutcome{
				Stage:      stage.Name,
				Result:     types.StageReady,
				LastStatus: outcome.LastStatus,
			})

		case cluster.WaitTimedOut:
			if gate.OnTimeout == types.AbortOnTimeout {
				o.log.FinishSpinnerWithError()
				o.logDiagnostics(ctx, gate)
				err := errors.Errorf("timed out waiting for %s in stage %s (last status: %s)", gate.Target, stage.Name, outcome.LastStatus)
				report.Outcomes = append(report.Outcomes, types.StageOutcome{
					Stage:      stage.Name,
					Result:     types.StageTimedOut,
					LastStatus: outcome.LastStatus,
					Err:        err,
				})
				return report, err
			}

			// the plan is optimistic: a slow dependency should not block
			// forward progress, later stages can still catch up
			o.log.FinishSpinnerWithWarning(nil)
			o.log.ActionWithoutSpinner("Timed out waiting for %s, continuing anyway (last status: %s)", gate.Target, outcome.LastStatus)
			o.logDiagnostics(ctx, gate)
			report.Outcomes = append(report.Outcomes, types.StageOutcome{
				Stage:      stage.Name,
				Result:     types.StageTimedOut,
				LastStatus: outcome.LastStatus,
			})

		case cluster.WaitErrorObserved:
			o.log.FinishSpinnerWithError()
			o.logDiagnostics(ctx, gate)
			err := errors.Errorf("stage %s failed: %s reported %s", stage.Name, gate.Target, outcome.LastStatus)
			report.Outcomes = append(report.Outcomes, types.StageOutcome{
				Stage:      stage.Name,
				Result:     types.StageFailed,
				LastStatus: outcome.LastStatus,
				Err:        err,
			})
			return report, err
		}
	}

	snapshot, err := o.client.Status(ctx, o.namespace)
	if err != nil {
		return report, errors.Wrap(err, "failed to get final topology status")
	}
	report.Snapshot = snapshot

	return report, nil
}

func (o *Orchestrator) logDiagnostics(ctx context.Context, gate *types.Gate) {
	if gate.DiagnosticSelector == "" {
		return
	}

	diag, err := o.client.PodDiagnostics(ctx, gate.Target.Namespace, gate.DiagnosticSelector)
	if err != nil {
		o.log.Debug("could not fetch pod diagnostics: %v", err)
		return
	}
	if diag != "" {
		o.log.Info("%s", diag)
	}
}

func describeObject(obj cluster.Object) string {
	kind := obj.GetObjectKind().GroupVersionKind().Kind
	return strings.ToLower(kind) + "/" + obj.GetName()
}
