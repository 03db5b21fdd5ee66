package deploy

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/pointer"

	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
)

const (
	OllamaDeploymentName = "ollama"
	OllamaServiceName    = "ollama"
	OllamaPVCName        = "ollama-models"
	ModelPullJobName     = "model-pull"
	WebDeploymentName    = "aichat-web"
	WebServiceName       = "aichat-web"
	WebConfigMapName     = "aichat-web-config"
	IngressName          = "aichat"

	ollamaPort = 11434
	webPort    = 8000
)

func appLabels(name string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       name,
		"app.kubernetes.io/part-of":    "ai-chat",
		"app.kubernetes.io/managed-by": "aichat",
	}
}

func selectorLabels(name string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name": name,
	}
}

func namespaceResource(opts types.DeployOptions) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   opts.Namespace,
			Labels: appLabels("ai-chat"),
		},
	}
}

func webConfigMap(opts types.DeployOptions) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      WebConfigMapName,
			Namespace: opts.Namespace,
			Labels:    appLabels(WebDeploymentName),
		},
		Data: map[string]string{
			"llmBaseURL": fmt.Sprintf("http://%s:%d/v1", OllamaServiceName, ollamaPort),
			"llmModel":   opts.Model,
		},
	}
}

func ollamaPVC(opts types.DeployOptions) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "PersistentVolumeClaim",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      OllamaPVCName,
			Namespace: opts.Namespace,
			Labels:    appLabels(OllamaDeploymentName),
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{
				corev1.ReadWriteOnce,
			},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(opts.ModelVolumeSize),
				},
			},
		},
	}
}

func ollamaDeployment(opts types.DeployOptions) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      OllamaDeploymentName,
			Namespace: opts.Namespace,
			Labels:    appLabels(OllamaDeploymentName),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: pointer.Int32(1),
			Selector: &metav1.LabelSelector{
				MatchLabels: selectorLabels(OllamaDeploymentName),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: appLabels(OllamaDeploymentName),
				},
				Spec: corev1.PodSpec{
					Volumes: []corev1.Volume{
						{
							Name: "models",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: OllamaPVCName,
								},
							},
						},
					},
					Containers: []corev1.Container{
						{
							Name:  "ollama",
							Image: opts.ModelServerImage,
							Ports: []corev1.ContainerPort{
								{
									Name:          "http",
									ContainerPort: ollamaPort,
								},
							},
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      "models",
									MountPath: "/root/.ollama",
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/",
										Port: intstr.FromInt(ollamaPort),
									},
								},
								InitialDelaySeconds: 5,
								PeriodSeconds:       5,
							},
						},
					},
				},
			},
		},
	}
}

func ollamaService(opts types.DeployOptions) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      OllamaServiceName,
			Namespace: opts.Namespace,
			Labels:    appLabels(OllamaDeploymentName),
		},
		Spec: corev1.ServiceSpec{
			Selector: selectorLabels(OllamaDeploymentName),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       ollamaPort,
					TargetPort: intstr.FromInt(ollamaPort),
				},
			},
		},
	}
}

// modelPullJob asks the already-running model server to download the
// model weights. The job talks to the ollama service rather than
// running its own server, so the weights land on the shared volume.
func modelPullJob(opts types.DeployOptions) *batchv1.Job {
	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "Job",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ModelPullJobName,
			Namespace: opts.Namespace,
			Labels:    appLabels(ModelPullJobName),
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: pointer.Int32(2),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: appLabels(ModelPullJobName),
				},
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{
						{
							Name:    "pull",
							Image:   opts.ModelServerImage,
							Command: []string{"ollama", "pull", opts.Model},
							Env: []corev1.EnvVar{
								{
									Name:  "OLLAMA_HOST",
									Value: fmt.Sprintf("http://%s:%d", OllamaServiceName, ollamaPort),
								},
							},
						},
					},
				},
			},
		},
	}
}

func webDeployment(opts types.DeployOptions) *appsv1.Deployment {
	env := []corev1.EnvVar{
		{
			Name: "AICHAT_LLM_BASE_URL",
			ValueFrom: &corev1.EnvVarSource{
				ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{
						Name: WebConfigMapName,
					},
					Key: "llmBaseURL",
				},
			},
		},
		{
			Name: "AICHAT_LLM_MODEL",
			ValueFrom: &corev1.EnvVarSource{
				ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{
						Name: WebConfigMapName,
					},
					Key: "llmModel",
				},
			},
		},
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      WebDeploymentName,
			Namespace: opts.Namespace,
			Labels:    appLabels(WebDeploymentName),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: pointer.Int32(1),
			Selector: &metav1.LabelSelector{
				MatchLabels: selectorLabels(WebDeploymentName),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: appLabels(WebDeploymentName),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:            "web",
							Image:           opts.WebImage,
							ImagePullPolicy: corev1.PullIfNotPresent,
							Env:             env,
							Ports: []corev1.ContainerPort{
								{
									Name:          "http",
									ContainerPort: webPort,
								},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/health",
										Port: intstr.FromInt(webPort),
									},
								},
								InitialDelaySeconds: 3,
								PeriodSeconds:       5,
							},
							LivenessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/health",
										Port: intstr.FromInt(webPort),
									},
								},
								InitialDelaySeconds: 10,
								PeriodSeconds:       15,
							},
						},
					},
				},
			},
		},
	}
}

func webService(opts types.DeployOptions) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      WebServiceName,
			Namespace: opts.Namespace,
			Labels:    appLabels(WebDeploymentName),
		},
		Spec: corev1.ServiceSpec{
			Selector: selectorLabels(WebDeploymentName),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       80,
					TargetPort: intstr.FromInt(webPort),
				},
			},
		},
	}
}

func ingressResource(opts types.DeployOptions) *networkingv1.Ingress {
	pathType := networkingv1.PathTypePrefix

	return &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      IngressName,
			Namespace: opts.Namespace,
			Labels:    appLabels(WebDeploymentName),
		},
		Spec: networkingv1.IngressSpec{
			IngressClassName: pointer.String(opts.IngressClass),
			Rules: []networkingv1.IngressRule{
				{
					Host: opts.Hostname,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathType,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: WebServiceName,
											Port: networkingv1.ServiceBackendPort{
												Number: 80,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
