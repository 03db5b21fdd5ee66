package localcluster

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// CommandRunner runs one command and returns its stdout. Swapped out in
// tests so no real minikube is needed.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// Minikube drives the local single-node cluster. It only shells out to
// the minikube binary; kubeconfig binding is minikube's own side effect
// of start.
type Minikube struct {
	profile string
	binary  string
	runner  CommandRunner
}

func NewMinikube(profile string) *Minikube {
	return &Minikube{
		profile: profile,
		binary:  "minikube",
		runner:  defaultRunner,
	}
}

// Check verifies the minikube binary is installed before anything runs.
func (m *Minikube) Check() error {
	if _, err := exec.LookPath(m.binary); err != nil {
		return errors.Wrap(err, "minikube not found in PATH")
	}
	return nil
}

func (m *Minikube) Start(ctx context.Context) error {
	_, err := m.runner(ctx, m.binary, "start", "--profile", m.profile)
	return errors.Wrap(err, "failed to start cluster")
}

func (m *Minikube) EnableIngress(ctx context.Context) error {
	_, err := m.runner(ctx, m.binary, "addons", "enable", "ingress", "--profile", m.profile)
	return errors.Wrap(err, "failed to enable ingress addon")
}

func (m *Minikube) IsRunning(ctx context.Context) bool {
	out, err := m.runner(ctx, m.binary, "status", "--profile", m.profile, "--format", "{{.Host}}")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "Running"
}

// IP returns the cluster's ingress address, the target of the operator's
// static hostname binding.
func (m *Minikube) IP(ctx context.Context) (string, error) {
	out, err := m.runner(ctx, m.binary, "ip", "--profile", m.profile)
	if err != nil {
		return "", errors.Wrap(err, "failed to get cluster ip")
	}
	return strings.TrimSpace(string(out)), nil
}

func (m *Minikube) Delete(ctx context.Context) error {
	_, err := m.runner(ctx, m.binary, "delete", "--profile", m.profile)
	return errors.Wrap(err, "failed to delete cluster")
}
