package k8sutil

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/utils/pointer"
)

// GetPodLogs returns up to tailLines lines of logs from the pod's first container.
func GetPodLogs(ctx context.Context, clientset kubernetes.Interface, pod *corev1.Pod, tailLines int64) ([]byte, error) {
	if len(pod.Spec.Containers) == 0 {
		return nil, errors.Errorf("pod %s has no containers", pod.Name)
	}

	podLogOpts := corev1.PodLogOptions{
		Container: pod.Spec.Containers[0].Name,
		TailLines: pointer.Int64(tailLines),
	}

	req := clientset.CoreV1().Pods(pod.Namespace).GetLogs(pod.Name, &podLogOpts)
	podLogs, err := req.Stream(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get log stream")
	}
	defer podLogs.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, podLogs); err != nil {
		return nil, errors.Wrap(err, "failed to copy logs")
	}

	return buf.Bytes(), nil
}

// ListPods returns the pods in the namespace matching the label selector.
func ListPods(ctx context.Context, clientset kubernetes.Interface, namespace string, selector string) ([]corev1.Pod, error) {
	pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pods")
	}

	return pods.Items, nil
}
