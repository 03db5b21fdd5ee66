package deploy

import (
	"context"
	"fmt"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

// TeardownResult reports what was removed and what deliberately remains.
// The local cluster keeps running so the next deploy is fast; stopping
// it is a separate operation.
type TeardownResult struct {
	// Deleted is false when the namespace was already gone.
	Deleted  bool
	Remnants []string
}

// Teardown deletes the deployment namespace, which transitively removes
// every object in it. Missing namespace is success, not an error.
func Teardown(ctx context.Context, client cluster.Client, opts types.DeployOptions, log *logger.CLILogger) (*TeardownResult, error) {
	log.ActionWithSpinner("Deleting namespace %s", opts.Namespace)

	deleted, err := client.DeleteNamespace(ctx, opts.Namespace)
	if err != nil {
		log.FinishSpinnerWithError()
		return nil, err
	}

	if deleted {
		log.FinishSpinner()
	} else {
		log.FinishSpinnerWithWarning(nil)
		log.ActionWithoutSpinner("Namespace %s was not found, nothing to delete", opts.Namespace)
	}

	return &TeardownResult{
		Deleted: deleted,
		Remnants: []string{
			"the local cluster is still running; remove it separately when you are done iterating",
			fmt.Sprintf("the /etc/hosts entry for %s, if you added one, was not removed", opts.Hostname),
		},
	}, nil
}
