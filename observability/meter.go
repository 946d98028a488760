package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/storefront/logger"
)

// InitMeter installs a global meter provider exporting to cfg.Endpoint.
func InitMeter(ctx context.Context, cfg Config, log *logger.Logger) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	log.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricOperationTotal    = "storefront.operation.total"
	MetricOperationDuration = "storefront.operation.duration"
	MetricCatalogLoads      = "storefront.catalog.loads"
	MetricCartItems         = "storefront.cart.items"
)

// Metrics holds the store's instruments.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	catalogLoads      metric.Int64Counter
	cartItems         metric.Int64UpDownCounter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter(MetricOperationTotal,
		metric.WithDescription("Store operations by name and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricOperationTotal, err)
	}

	operationDuration, err := meter.Float64Histogram(MetricOperationDuration,
		metric.WithDescription("Duration of store operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricOperationDuration, err)
	}

	catalogLoads, err := meter.Int64Counter(MetricCatalogLoads,
		metric.WithDescription("Catalog loads by source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCatalogLoads, err)
	}

	cartItems, err := meter.Int64UpDownCounter(MetricCartItems,
		metric.WithDescription("Net units added to the local cart"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCartItems, err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		catalogLoads:      catalogLoads,
		cartItems:         cartItems,
	}, nil
}

// RecordOperation records one finished operation.
func (m *Metrics) RecordOperation(ctx context.Context, operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
	m.operationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordCatalogLoad counts a catalog adopted from source.
func (m *Metrics) RecordCatalogLoad(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.catalogLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordCartDelta tracks local quantity changes.
func (m *Metrics) RecordCartDelta(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.cartItems.Add(ctx, delta)
}
