package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
)

func Test_Plan_StageOrder(t *testing.T) {
	plan := Plan(testDeployOptions())

	names := []string{}
	for _, stage := range plan {
		names = append(names, stage.Name)
	}

	assert.Equal(t, []string{"namespace", "model-server", "model-pull", "web", "ingress"}, names)
}

func Test_Plan_Gates(t *testing.T) {
	req := require.New(t)

	plan := Plan(testDeployOptions())

	byName := map[string]types.Stage{}
	for _, stage := range plan {
		byName[stage.Name] = stage
	}

	// namespace and ingress are ungated
	assert.Nil(t, byName["namespace"].Gate)
	assert.Nil(t, byName["ingress"].Gate)

	modelServer := byName["model-server"].Gate
	req.NotNil(modelServer)
	assert.Equal(t, cluster.DeploymentAvailable, modelServer.Condition)
	assert.Equal(t, "deployment/ollama", modelServer.Target.String())
	assert.Equal(t, types.ContinueOnTimeout, modelServer.OnTimeout)

	modelPull := byName["model-pull"].Gate
	req.NotNil(modelPull)
	assert.Equal(t, cluster.JobComplete, modelPull.Condition)
	assert.Equal(t, "job/model-pull", modelPull.Target.String())
	assert.Equal(t, types.ContinueOnTimeout, modelPull.OnTimeout)

	web := byName["web"].Gate
	req.NotNil(web)
	assert.Equal(t, cluster.DeploymentAvailable, web.Condition)
	assert.Equal(t, "deployment/aichat-web", web.Target.String())
}

func Test_Plan_StrictModelPull(t *testing.T) {
	req := require.New(t)

	opts := testDeployOptions()
	opts.StrictModelPull = true

	for _, stage := range Plan(opts) {
		if stage.Name != "model-pull" {
			continue
		}
		req.NotNil(stage.Gate)
		assert.Equal(t, types.AbortOnTimeout, stage.Gate.OnTimeout)
		return
	}
	t.Fatal("model-pull stage not found")
}
