package material

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/alloyforge/internal/platform/request"
	"github.com/taibuivan/alloyforge/internal/platform/respond"
	"github.com/taibuivan/alloyforge/internal/platform/validate"
	"github.com/taibuivan/alloyforge/pkg/pagination"
	"github.com/taibuivan/alloyforge/pkg/slug"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMaterials)
	router.Get("/by-slug/{slug}", handler.getMaterialBySlug)
	router.Get("/{id}", handler.getMaterial)
}

func (handler *Handler) listMaterials(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	generated, err := requestutil.OptionalBool(request, "generated")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	materials, total, err := handler.service.ListMaterials(request.Context(), Filter{Generated: generated}, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if materials == nil {
		materials = []*Material{}
	}
	respond.Paginated(writer, materials, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMaterial(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	material, err := handler.service.GetMaterial(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, material)
}

func (handler *Handler) getMaterialBySlug(writer http.ResponseWriter, request *http.Request) {
	value, err := requestutil.ID(request, "slug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !slug.Valid(value) {
		respond.Error(writer, request, validate.RequiredError("slug", "Must be lowercase words joined by hyphens"))
		return
	}

	material, err := handler.service.GetMaterialBySlug(request.Context(), value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, material)
}
