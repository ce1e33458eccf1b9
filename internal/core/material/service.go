package material

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/pkg/suggest"
)

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService builds the read service. cache may be nil.
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) ListMaterials(context context.Context, filter Filter, limit, offset int) ([]*Material, int, error) {
	return service.repo.SearchMaterials(context, filter, limit, offset)
}

// GetMaterial reads through the cache. A cache failure is logged and served
// from the repository.
func (service *Service) GetMaterial(context context.Context, id string) (*Material, error) {
	if service.cache != nil {
		cached, err := service.cache.GetMaterial(context, id)
		if err != nil {
			service.logger.Warn("material_cache_read_failed", slog.String("material_id", id), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	m, err := service.repo.GetMaterial(context, id)
	if err != nil {
		return nil, service.notFound(context, id, err)
	}

	if service.cache != nil {
		if err := service.cache.SetMaterial(context, m); err != nil {
			service.logger.Warn("material_cache_write_failed", slog.String("material_id", id), slog.Any("error", err))
		}
	}
	return m, nil
}

func (service *Service) GetMaterialBySlug(context context.Context, slug string) (*Material, error) {
	return service.repo.GetMaterialBySlug(context, slug)
}

// notFound adds the closest known id to a NOT_FOUND error.
func (service *Service) notFound(context context.Context, id string, err error) error {
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return err
	}

	notFound := apperr.NotFound("Material")

	ids, listErr := service.repo.MaterialIDs(context)
	if listErr != nil {
		return notFound
	}
	if hint, ok := suggest.Closest(id, ids); ok {
		notFound.Message += fmt.Sprintf("; did you mean %q?", hint)
	}
	return notFound
}
