package deploy

import (
	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
)

// Plan builds the ordered deployment stages. The order is an invariant:
// later stages reference names and ports established by earlier ones,
// so namespace comes first and ingress last.
func Plan(opts types.DeployOptions) []types.Stage {
	modelPullPolicy := types.ContinueOnTimeout
	if opts.StrictModelPull {
		modelPullPolicy = types.AbortOnTimeout
	}

	return []types.Stage{
		{
			Name: "namespace",
			Objects: []cluster.Object{
				namespaceResource(opts),
			},
		},
		{
			Name: "model-server",
			Objects: []cluster.Object{
				ollamaPVC(opts),
				ollamaDeployment(opts),
				ollamaService(opts),
			},
			Gate: &types.Gate{
				Condition: cluster.DeploymentAvailable,
				Target: cluster.ObjectRef{
					Kind:      "Deployment",
					Name:      OllamaDeploymentName,
					Namespace: opts.Namespace,
				},
				Timeout:            opts.ModelServerTimeout,
				OnTimeout:          types.ContinueOnTimeout,
				DiagnosticSelector: "app.kubernetes.io/name=" + OllamaDeploymentName,
			},
		},
		{
			Name: "model-pull",
			Objects: []cluster.Object{
				modelPullJob(opts),
			},
			Gate: &types.Gate{
				Condition: cluster.JobComplete,
				Target: cluster.ObjectRef{
					Kind:      "Job",
					Name:      ModelPullJobName,
					Namespace: opts.Namespace,
				},
				Timeout:            opts.ModelPullTimeout,
				OnTimeout:          modelPullPolicy,
				DiagnosticSelector: "app.kubernetes.io/name=" + ModelPullJobName,
			},
		},
		{
			Name: "web",
			Objects: []cluster.Object{
				webConfigMap(opts),
				webDeployment(opts),
				webService(opts),
			},
			Gate: &types.Gate{
				Condition: cluster.DeploymentAvailable,
				Target: cluster.ObjectRef{
					Kind:      "Deployment",
					Name:      WebDeploymentName,
					Namespace: opts.Namespace,
				},
				Timeout:            opts.WebTimeout,
				OnTimeout:          types.ContinueOnTimeout,
				DiagnosticSelector: "app.kubernetes.io/name=" + WebDeploymentName,
			},
		},
		{
			Name: "ingress",
			Objects: []cluster.Object{
				ingressResource(opts),
			},
		},
	}
}
