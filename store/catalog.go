package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/storefront/catalog"
	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/observability"
)

// FetchCatalog loads the product list from the backend. An error, an
// unsuccessful reply or an empty list all switch to the fallback catalog
// instead. It never fails; the adopted source is returned.
func (s *Store) FetchCatalog(ctx context.Context) catalog.Source {
	ctx, op := observability.StartOperation(ctx, s.tracer, s.metrics, "catalog.fetch")
	log := s.log.WithContext(ctx)

	cat, reason := s.fetchBackendCatalog(ctx, log)
	if cat == nil {
		cat = s.loadFallback(ctx, log, reason)
		op.SetResult(observability.ResultRejected)
	}

	s.mu.Lock()
	s.catalog = cat
	s.catalogLoadedAt = s.now()
	if s.state == StateUninitialized {
		s.state = StateCatalogLoaded
	}
	s.mu.Unlock()

	op.SetAttributes(attribute.String(observability.AttrSource, cat.Source().String()))
	op.End(ctx, nil)
	s.metrics.RecordCatalogLoad(ctx, cat.Source().String())
	log.Info("catalog loaded", logger.Fields(logger.FieldSource, cat.Source().String(), logger.FieldCount, cat.Len()))
	return cat.Source()
}

func (s *Store) fetchBackendCatalog(ctx context.Context, log *logger.Logger) (*catalog.Catalog, string) {
	list, err := s.api.ListFoods(ctx)
	switch {
	case err != nil:
		log.Error("catalog request failed", logger.Fields(logger.FieldError, err.Error()))
		return nil, "request failed"
	case !list.Success:
		return nil, "backend reported failure"
	case len(list.Data) == 0:
		return nil, "backend returned no products"
	}

	cat := catalog.New(list.Data, catalog.SourceBackend)
	if err := cat.Validate(); err != nil {
		log.Warn("backend catalog has invalid products", logger.Fields(logger.FieldError, err.Error()))
	}
	return cat, ""
}

func (s *Store) loadFallback(ctx context.Context, log *logger.Logger, reason string) *catalog.Catalog {
	cat, err := s.fallback()
	if err != nil || cat == nil {
		log.Error("fallback catalog unavailable", logger.Fields(
			logger.FieldError, errors.CatalogUnavailable(err).Error()))
		return catalog.New(nil, catalog.SourceFallback)
	}
	log.Warn("using fallback catalog", logger.Fields("reason", reason, logger.FieldCount, cat.Len()))
	return cat
}
