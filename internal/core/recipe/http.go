package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/alloyforge/internal/platform/request"
	"github.com/taibuivan/alloyforge/internal/platform/respond"
	"github.com/taibuivan/alloyforge/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRecipes)
	router.Get("/{id}", handler.getRecipe)
}

func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	recipes, total, err := handler.service.ListRecipes(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if recipes == nil {
		recipes = []*Recipe{}
	}
	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.GetRecipe(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}
