// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package house

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prefabrica/prefabrica/internal/platform/middleware"
	requestutil "github.com/prefabrica/prefabrica/internal/platform/request"
	"github.com/prefabrica/prefabrica/internal/platform/respond"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/convert"
	"github.com/prefabrica/prefabrica/pkg/pagination"
	"github.com/prefabrica/prefabrica/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the house router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalogue
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Editorial management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleEditor))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Post("/{id}/validate", handler.validatePublish)
		r.Post("/{id}/publish", handler.publish)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Delete("/{id}", handler.archive)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:      query.Get("q"),
		ProviderID: query.Get("provider_id"),
		Status:     Status(query.Get("status")),
		Tier:       publish.Tier(query.Get("tier")),
	}

	if raw := query.Get("min_area"); raw != "" {
		filter.MinArea = convert.ToFloat64(raw)
	}
	if raw := query.Get("bedrooms"); raw != "" {
		filter.Bedrooms = pointer.To(convert.ToInt(raw))
	}

	houses, total, err := handler.service.ListHouses(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, houses, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	house, err := handler.service.GetHouse(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, house)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	house := &House{}
	if err := requestutil.DecodeJSON(request, house); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateHouse(request.Context(), house); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, house)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	house := &House{}
	if err := requestutil.DecodeJSON(request, house); err != nil {
		respond.Error(writer, request, err)
		return
	}
	house.ID = requestutil.ID(request, "id")

	if err := handler.service.UpdateHouse(request.Context(), house); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, house)
}

func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ArchiveHouse(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) validatePublish(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.ValidatePublish(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publishReport(result))
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Publish(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !result.OK() {
		respond.JSON(writer, http.StatusUnprocessableEntity, respond.SuccessEnvelope{Data: publishReport(result)})
		return
	}
	respond.OK(writer, publishReport(result))
}

// publishReport is the wire shape of a publish-readiness result.
type publishReportBody struct {
	OK     bool            `json:"ok"`
	Errors []publish.Error `json:"errors"`
}

func publishReport(result publish.Result) publishReportBody {
	errs := result.Errors
	if errs == nil {
		errs = []publish.Error{}
	}
	return publishReportBody{OK: result.OK(), Errors: errs}
}
