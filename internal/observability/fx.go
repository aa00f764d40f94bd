package observability

import (
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/config"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/logger"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/metrics"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module wires the logger, tracer provider and metrics instruments.
var Module = fx.Module("observability",
	fx.Provide(
		logger.New,
		tracing.NewConfig,
		tracing.NewProvider,
		newMetricsConfig,
		newMeterProvider,
		metrics.NewHTTPMetrics,
	),
	// Force provider construction; nothing else depends on it directly.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}
