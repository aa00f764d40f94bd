package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks the compile/render/publish pipeline.
type PipelineMetrics struct {
	renderDuration *prometheus.HistogramVec
	rendersTotal   *prometheus.CounterVec
	publishesTotal *prometheus.CounterVec
	cacheDecisions *prometheus.CounterVec
	artifactBytes  prometheus.Histogram
}

var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *PipelineMetrics
)

func Pipeline() *PipelineMetrics {
	return PipelineWithConfig(Config{})
}

func PipelineWithConfig(cfg Config) *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = newPipelineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return pipelineMetrics
}

func ResetPipelineMetricsForTest() {
	pipelineMetricsOnce = sync.Once{}
	pipelineMetrics = nil
}

func newPipelineMetrics(registerer prometheus.Registerer, cfg Config) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "quotedoc"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "quotedoc_render_duration_seconds",
			Help:        "Wall time of one headless render, launch to PDF bytes.",
			Buckets:     []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | launch_failed | load_timeout | raster_timeout | error
	)

	rendersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "quotedoc_renders_total",
			Help:        "Total render attempts by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"},
	)

	publishesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "quotedoc_publishes_total",
			Help:        "Total artifact publish attempts by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | upload_failed | pointer_failed
	)

	cacheDecisions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "quotedoc_download_cache_decisions_total",
			Help:        "Download requests by cache decision.",
			ConstLabels: constLabels,
		},
		[]string{"decision"}, // hit | miss
	)

	artifactBytes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "quotedoc_artifact_bytes",
			Help:        "Size of published artifacts.",
			Buckets:     prometheus.ExponentialBuckets(16*1024, 4, 8),
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		renderDuration,
		rendersTotal,
		publishesTotal,
		cacheDecisions,
		artifactBytes,
	)

	return &PipelineMetrics{
		renderDuration: renderDuration,
		rendersTotal:   rendersTotal,
		publishesTotal: publishesTotal,
		cacheDecisions: cacheDecisions,
		artifactBytes:  artifactBytes,
	}
}

func (m *PipelineMetrics) ObserveRender(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(result).Observe(duration.Seconds())
	m.rendersTotal.WithLabelValues(result).Inc()
}

func (m *PipelineMetrics) IncPublish(result string) {
	if m == nil {
		return
	}
	m.publishesTotal.WithLabelValues(result).Inc()
}

func (m *PipelineMetrics) IncCacheDecision(decision string) {
	if m == nil {
		return
	}
	m.cacheDecisions.WithLabelValues(decision).Inc()
}

func (m *PipelineMetrics) ObserveArtifactSize(bytes int) {
	if m == nil {
		return
	}
	if bytes < 0 {
		bytes = 0
	}
	m.artifactBytes.Observe(float64(bytes))
}
