package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records validation metrics into its own registry.
type Collector struct {
	registry *prometheus.Registry

	fieldValidations  *prometheus.CounterVec
	formSubmissions   *prometheus.CounterVec
	presetValidations *prometheus.CounterVec
	ruleFailures      *prometheus.CounterVec
	reloads           *prometheus.CounterVec
	throttled         *prometheus.CounterVec
}

// NewCollector registers the counters under namespace, plus the Go runtime and
// process collectors.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "formvalidation"
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fieldValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_validations_total",
			Help:      "Field validations run by form engines.",
		}, []string{"form", "field", "result"}),
		formSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions handled by form engines.",
		}, []string{"form", "result"}),
		presetValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preset_validations_total",
			Help:      "Server-side validations of posted forms.",
		}, []string{"preset", "result"}),
		ruleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_failures_total",
			Help:      "Failed rules by name.",
		}, []string{"rule"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_reloads_total",
			Help:      "Reloads of the rules presets file.",
		}, []string{"result"}),
		throttled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_throttled_total",
			Help:      "Form submissions rejected by the rate limiter.",
		}, []string{"path"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.fieldValidations,
		c.formSubmissions,
		c.presetValidations,
		c.ruleFailures,
		c.reloads,
		c.throttled,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) FieldValidated(form, field, rule string, valid bool) {
	c.fieldValidations.WithLabelValues(form, field, result(valid)).Inc()
	if !valid && rule != "" {
		c.ruleFailures.WithLabelValues(rule).Inc()
	}
}

func (c *Collector) FormSubmitted(form string, valid bool) {
	c.formSubmissions.WithLabelValues(form, result(valid)).Inc()
}

// PresetValidated records a server-side validation and the rules that failed.
func (c *Collector) PresetValidated(preset string, valid bool, failedRules []string) {
	c.presetValidations.WithLabelValues(preset, result(valid)).Inc()
	for _, r := range failedRules {
		c.ruleFailures.WithLabelValues(r).Inc()
	}
}

// Reloaded records a presets reload; a nil err counts as success.
func (c *Collector) Reloaded(err error) {
	if err != nil {
		c.reloads.WithLabelValues("error").Inc()
		return
	}
	c.reloads.WithLabelValues("success").Inc()
}

// Throttled records a submission rejected by the rate limiter.
func (c *Collector) Throttled(path string) {
	c.throttled.WithLabelValues(path).Inc()
}

func result(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
