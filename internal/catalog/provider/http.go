// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/platform/middleware"
	requestutil "github.com/prefabrica/prefabrica/internal/platform/request"
	"github.com/prefabrica/prefabrica/internal/platform/respond"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the provider router: public catalogue reads plus an
// editor/admin management group.
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
		r.Get("/{id}/landing", handler.getLanding)
		r.Put("/{id}/landing", handler.setLanding)
		r.Post("/{id}/validate", handler.validatePublish)
		r.Post("/{id}/publish", handler.publish)
	})

	// Destructive actions are admin-only
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Delete("/{id}", handler.archive)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Query:  request.URL.Query().Get("q"),
		Status: Status(request.URL.Query().Get("status")),
		Region: coverage.Region(request.URL.Query().Get("region")),
	}

	providers, total, err := handler.service.ListProviders(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, providers, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	provider, err := handler.service.GetProvider(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, provider)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	provider := &Provider{}
	if err := requestutil.DecodeJSON(request, provider); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateProvider(request.Context(), provider); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, provider)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	provider := &Provider{}
	if err := requestutil.DecodeJSON(request, provider); err != nil {
		respond.Error(writer, request, err)
		return
	}
	provider.ID = requestutil.ID(request, "id")

	if err := handler.service.UpdateProvider(request.Context(), provider); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, provider)
}

func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ArchiveProvider(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getLanding(writer http.ResponseWriter, request *http.Request) {
	landing, err := handler.service.GetLanding(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, landing)
}

func (handler *Handler) setLanding(writer http.ResponseWriter, request *http.Request) {
	landing := &Landing{}
	if err := requestutil.DecodeJSON(request, landing); err != nil {
		respond.Error(writer, request, err)
		return
	}
	landing.ProviderID = requestutil.ID(request, "id")

	if err := handler.service.SetLanding(request.Context(), landing); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, landing)
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
