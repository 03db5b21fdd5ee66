package deploy

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

func Test_Teardown(t *testing.T) {
	req := require.New(t)

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: "ai-chat"},
	}
	client := cluster.NewKubeClient(fake.NewSimpleClientset(ns))
	log := logger.NewCLILogger(io.Discard)

	result, err := Teardown(context.Background(), client, testDeployOptions(), log)
	req.NoError(err)
	assert.True(t, result.Deleted)
	assert.NotEmpty(t, result.Remnants)

	// the namespace is already gone, tearing down again is a no-op
	result, err = Teardown(context.Background(), client, testDeployOptions(), log)
	req.NoError(err)
	assert.False(t, result.Deleted)
}
