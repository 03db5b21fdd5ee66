package cluster

import (
	"context"

	"github.com/pkg/errors"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	kuberneteserrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Apply create-or-updates the object. Every branch is safe to repeat:
// a second apply of the same object succeeds and converges to the same
// end-state.
func (c *KubeClient) Apply(ctx context.Context, obj Object) error {
	switch o := obj.(type) {
	case *corev1.Namespace:
		return c.applyNamespace(ctx, o)
	case *corev1.ConfigMap:
		return c.applyConfigMap(ctx, o)
	case *corev1.PersistentVolumeClaim:
		return c.applyPVC(ctx, o)
	case *corev1.Service:
		return c.applyService(ctx, o)
	case *appsv1.Deployment:
		return c.applyDeployment(ctx, o)
	case *batchv1.Job:
		return c.applyJob(ctx, o)
	case *networkingv1.Ingress:
		return c.applyIngress(ctx, o)
	default:
		return errors.Errorf("unsupported object type %T", obj)
	}
}

func (c *KubeClient) applyNamespace(ctx context.Context, namespace *corev1.Namespace) error {
	_, err := c.clientset.CoreV1().Namespaces().Create(ctx, namespace, metav1.CreateOptions{})
	if err != nil && !kuberneteserrors.IsAlreadyExists(err) {
		return errors.Wrapf(err, "failed to create namespace %s", namespace.Name)
	}

	return nil
}

func (c *KubeClient) applyConfigMap(ctx context.Context, configMap *corev1.ConfigMap) error {
	existing, err := c.clientset.CoreV1().ConfigMaps(configMap.Namespace).Get(ctx, configMap.Name, metav1.GetOptions{})
	if err != nil {
		if !kuberneteserrors.IsNotFound(err) {
			return errors.Wrapf(err, "failed to get existing configmap %s", configMap.Name)
		}

		_, err = c.clientset.CoreV1().ConfigMaps(configMap.Namespace).Create(ctx, configMap, metav1.CreateOptions{})
		if err != nil {
			return errors.Wrapf(err, "failed to create configmap %s", configMap.Name)
		}

		return nil
	}

	existing.Data = configMap.Data

	_, err = c.clientset.CoreV1().ConfigMaps(configMap.Namespace).Update(ctx, existing, metav1.UpdateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to update configmap %s", configMap.Name)
	}

	return nil
}

func (c *KubeClient) applyPVC(ctx context.Context, pvc *corev1.PersistentVolumeClaim) error {
	// claim specs are immutable after creation, so an existing claim is
	// left as-is
	_, err := c.clientset.CoreV1().PersistentVolumeClaims(pvc.Namespace).Get(ctx, pvc.Name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !kuberneteserrors.IsNotFound(err) {
		return errors.Wrapf(err, "failed to get existing pvc %s", pvc.Name)
	}

	_, err = c.clientset.CoreV1().PersistentVolumeClaims(pvc.Namespace).Create(ctx, pvc, metav1.CreateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to create pvc %s", pvc.Name)
	}

	return nil
}

func (c *KubeClient) applyService(ctx context.Context, service *corev1.Service) error {
	existing, err := c.clientset.CoreV1().Services(service.Namespace).Get(ctx, service.Name, metav1.GetOptions{})
	if err != nil {
		if !kuberneteserrors.IsNotFound(err) {
			return errors.Wrapf(err, "failed to get existing service %s", service.Name)
		}

		_, err = c.clientset.CoreV1().Services(service.Namespace).Create(ctx, service, metav1.CreateOptions{})
		if err != nil {
			return errors.Wrapf(err, "failed to create service %s", service.Name)
		}

		return nil
	}

	// keep the allocated cluster IP
	existing.Spec.Ports = service.Spec.Ports
	existing.Spec.Selector = service.Spec.Selector
	existing.Spec.Type = service.Spec.Type

	_, err = c.clientset.CoreV1().Services(service.Namespace).Update(ctx, existing, metav1.UpdateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to update service %s", service.Name)
	}

	return nil
}

func (c *KubeClient) applyDeployment(ctx context.Context, deployment *appsv1.Deployment) error {
	existing, err := c.clientset.AppsV1().Deployments(deployment.Namespace).Get(ctx, deployment.Name, metav1.GetOptions{})
	if err != nil {
		if !kuberneteserrors.IsNotFound(err) {
			return errors.Wrapf(err, "failed to get existing deployment %s", deployment.Name)
		}

		_, err = c.clientset.AppsV1().Deployments(deployment.Namespace).Create(ctx, deployment, metav1.CreateOptions{})
		if err != nil {
			return errors.Wrapf(err, "failed to create deployment %s", deployment.Name)
		}

		return nil
	}

	existing.Spec = deployment.Spec

	_, err = c.clientset.AppsV1().Deployments(deployment.Namespace).Update(ctx, existing, metav1.UpdateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to update deployment %s", deployment.Name)
	}

	return nil
}

func (c *KubeClient) applyJob(ctx context.Context, job *batchv1.Job) error {
	// job pod templates are immutable, so re-applying an existing job is
	// a no-op; the gate on the job's Complete condition still runs
	_, err := c.clientset.BatchV1().Jobs(job.Namespace).Get(ctx, job.Name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !kuberneteserrors.IsNotFound(err) {
		return errors.Wrapf(err, "failed to get existing job %s", job.Name)
	}

	_, err = c.clientset.BatchV1().Jobs(job.Namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to create job %s", job.Name)
	}

	return nil
}

func (c *KubeClient) applyIngress(ctx context.Context, ingress *networkingv1.Ingress) error {
	existing, err := c.clientset.NetworkingV1().Ingresses(ingress.Namespace).Get(ctx, ingress.Name, metav1.GetOptions{})
	if err != nil {
		if !kuberneteserrors.IsNotFound(err) {
			return errors.Wrapf(err, "failed to get existing ingress %s", ingress.Name)
		}

		_, err = c.clientset.NetworkingV1().Ingresses(ingress.Namespace).Create(ctx, ingress, metav1.CreateOptions{})
		if err != nil {
			return errors.Wrapf(err, "failed to create ingress %s", ingress.Name)
		}

		return nil
	}

	existing.Spec = ingress.Spec

	_, err = c.clientset.NetworkingV1().Ingresses(ingress.Namespace).Update(ctx, existing, metav1.UpdateOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to update ingress %s", ingress.Name)
	}

	return nil
}

// DeleteNamespace removes the namespace and everything scoped to it.
// Deleting a namespace that does not exist is not an error.
func (c *KubeClient) DeleteNamespace(ctx context.Context, namespace string) (bool, error) {
	err := c.clientset.CoreV1().Namespaces().Delete(ctx, namespace, metav1.DeleteOptions{})
	if err != nil {
		if kuberneteserrors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to delete namespace %s", namespace)
	}

	return true, nil
}
