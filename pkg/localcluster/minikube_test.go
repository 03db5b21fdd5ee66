package localcluster

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func fakeRunner(record *[]recordedCommand, stdout string, err error) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*record = append(*record, recordedCommand{name: name, args: args})
		if err != nil {
			return nil, err
		}
		return []byte(stdout), nil
	}
}

func Test_Start(t *testing.T) {
	req := require.New(t)

	var commands []recordedCommand
	m := NewMinikube("aichat")
	m.runner = fakeRunner(&commands, "", nil)

	req.NoError(m.Start(context.Background()))

	req.Len(commands, 1)
	assert.Equal(t, "minikube", commands[0].name)
	assert.Equal(t, []string{"start", "--profile", "aichat"}, commands[0].args)
}

func Test_EnableIngress(t *testing.T) {
	req := require.New(t)

	var commands []recordedCommand
	m := NewMinikube("aichat")
	m.runner = fakeRunner(&commands, "", nil)

	req.NoError(m.EnableIngress(context.Background()))

	req.Len(commands, 1)
	assert.Equal(t, []string{"addons", "enable", "ingress", "--profile", "aichat"}, commands[0].args)
}

func Test_IsRunning(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		err    error
		want   bool
	}{
		{name: "running", stdout: "Running\n", want: true},
		{name: "stopped", stdout: "Stopped\n", want: false},
		{name: "no profile", err: errors.New("profile not found"), want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var commands []recordedCommand
			m := NewMinikube("aichat")
			m.runner = fakeRunner(&commands, test.stdout, test.err)

			assert.Equal(t, test.want, m.IsRunning(context.Background()))
		})
	}
}

func Test_IP(t *testing.T) {
	req := require.New(t)

	var commands []recordedCommand
	m := NewMinikube("aichat")
	m.runner = fakeRunner(&commands, "192.168.49.2\n", nil)

	ip, err := m.IP(context.Background())
	req.NoError(err)
	assert.Equal(t, "192.168.49.2", ip)
}

func Test_IP_Error(t *testing.T) {
	var commands []recordedCommand
	m := NewMinikube("aichat")
	m.runner = fakeRunner(&commands, "", errors.New("no cluster"))

	_, err := m.IP(context.Background())
	require.Error(t, err)
}

func Test_Delete(t *testing.T) {
	req := require.New(t)

	var commands []recordedCommand
	m := NewMinikube("aichat")
	m.runner = fakeRunner(&commands, "", nil)

	req.NoError(m.Delete(context.Background()))

	req.Len(commands, 1)
	assert.Equal(t, []string{"delete", "--profile", "aichat"}, commands[0].args)
}
