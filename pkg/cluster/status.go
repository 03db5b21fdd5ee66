package cluster

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Ciwooooo/ai-chat-app/pkg/k8sutil"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Status gathers a point-in-time snapshot of every deployed object in
// the namespace. Read-only; the cluster remains the source of truth.
func (c *KubeClient) Status(ctx context.Context, namespace string) (*TopologySnapshot, error) {
	var (
		deployments *appsv1.DeploymentList
		jobs        *batchv1.JobList
		services    *corev1.ServiceList
		ingresses   *networkingv1.IngressList
		pods        *corev1.PodList
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		deployments, err = c.clientset.AppsV1().Deployments(namespace).List(gctx, metav1.ListOptions{})
		return errors.Wrap(err, "failed to list deployments")
	})
	g.Go(func() error {
		var err error
		jobs, err = c.clientset.BatchV1().Jobs(namespace).List(gctx, metav1.ListOptions{})
		return errors.Wrap(err, "failed to list jobs")
	})
	g.Go(func() error {
		var err error
		services, err = c.clientset.CoreV1().Services(namespace).List(gctx, metav1.ListOptions{})
		return errors.Wrap(err, "failed to list services")
	})
	g.Go(func() error {
		var err error
		ingresses, err = c.clientset.NetworkingV1().Ingresses(namespace).List(gctx, metav1.ListOptions{})
		return errors.Wrap(err, "failed to list ingresses")
	})
	g.Go(func() error {
		var err error
		pods, err = c.clientset.CoreV1().Pods(namespace).List(gctx, metav1.ListOptions{})
		return errors.Wrap(err, "failed to list pods")
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &TopologySnapshot{Namespace: namespace}

	for _, d := range deployments.Items {
		var desired int32 = 1
		if d.Spec.Replicas != nil {
			desired = *d.Spec.Replicas
		}
		snapshot.Resources = append(snapshot.Resources, ResourceStatus{
			Kind:   "Deployment",
			Name:   d.Name,
			Status: fmt.Sprintf("%d/%d ready", d.Status.ReadyReplicas, desired),
		})
	}

	for _, j := range jobs.Items {
		status := "running"
		for _, cond := range j.Status.Conditions {
			if cond.Status != corev1.ConditionTrue {
				continue
			}
			if cond.Type == batchv1.JobComplete {
				status = "complete"
			}
			if cond.Type == batchv1.JobFailed {
				status = "failed"
			}
		}
		snapshot.Resources = append(snapshot.Resources, ResourceStatus{
			Kind:   "Job",
			Name:   j.Name,
			Status: status,
		})
	}

	for _, s := range services.Items {
		snapshot.Resources = append(snapshot.Resources, ResourceStatus{
			Kind:   "Service",
			Name:   s.Name,
			Status: s.Spec.ClusterIP,
		})
	}

	for _, ing := range ingresses.Items {
		hosts := []string{}
		for _, rule := range ing.Spec.Rules {
			hosts = append(hosts, rule.Host)
		}
		snapshot.Resources = append(snapshot.Resources, ResourceStatus{
			Kind:   "Ingress",
			Name:   ing.Name,
			Status: strings.Join(hosts, ","),
		})
	}

	for _, p := range pods.Items {
		snapshot.Resources = append(snapshot.Resources, ResourceStatus{
			Kind:   "Pod",
			Name:   p.Name,
			Status: string(p.Status.Phase),
		})
	}

	sort.Slice(snapshot.Resources, func(i, j int) bool {
		if snapshot.Resources[i].Kind != snapshot.Resources[j].Kind {
			return snapshot.Resources[i].Kind < snapshot.Resources[j].Kind
		}
		return snapshot.Resources[i].Name < snapshot.Resources[j].Name
	})

	return snapshot, nil
}

// PodDiagnostics describes the pods matching the selector: phase,
// container wait reasons, and recent logs where reachable. Log fetch
// failures are reported inline rather than failing the whole call.
func (c *KubeClient) PodDiagnostics(ctx context.Context, namespace string, selector string) (string, error) {
	pods, err := k8sutil.ListPods(ctx, c.clientset, namespace, selector)
	if err != nil {
		return "", err
	}

	if len(pods) == 0 {
		return fmt.Sprintf("no pods found for selector %q", selector), nil
	}

	var sb strings.Builder
	for i := range pods {
		pod := pods[i]
		fmt.Fprintf(&sb, "pod %s: %s", pod.Name, pod.Status.Phase)
		for _, cs := range pod.Status.ContainerStatuses {
			if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
				fmt.Fprintf(&sb, " (%s: %s)", cs.Name, cs.State.Waiting.Reason)
			}
		}
		sb.WriteString("\n")

		logs, err := k8sutil.GetPodLogs(ctx, c.clientset, &pod, 20)
		if err != nil {
			fmt.Fprintf(&sb, "  logs unavailable: %v\n", err)
			continue
		}
		for _, line := range strings.Split(strings.TrimSpace(string(logs)), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
