package recipe

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

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) ListRecipes(context context.Context, limit, offset int) ([]*Recipe, int, error) {
	return service.repo.SearchRecipes(context, limit, offset)
}

func (service *Service) GetRecipe(context context.Context, id string) (*Recipe, error) {
	if service.cache != nil {
		cached, err := service.cache.GetRecipe(context, id)
		if err != nil {
			service.logger.Warn("recipe_cache_read_failed", slog.String("recipe_id", id), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	r, err := service.repo.GetRecipe(context, id)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		notFound := apperr.NotFound("Recipe")
		if ids, listErr := service.repo.RecipeIDs(context); listErr == nil {
			if hint, ok := suggest.Closest(id, ids); ok {
				notFound.Message += fmt.Sprintf("; did you mean %q?", hint)
			}
		}
		return nil, notFound
	}

	if service.cache != nil {
		if err := service.cache.SetRecipe(context, r); err != nil {
			service.logger.Warn("recipe_cache_write_failed", slog.String("recipe_id", id), slog.Any("error", err))
		}
	}
	return r, nil
}
