// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package serviceproduct

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

// Routes returns the services router: public catalogue reads plus an
// editor/admin management group with coverage endpoints.
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
		r.Get("/{id}/coverage", handler.previewCoverage)
		r.Get("/{id}/coverage/deltas", handler.getDeltas)
		r.Put("/{id}/coverage/deltas", handler.setDeltas)
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
		Query:      request.URL.Query().Get("q"),
		Status:     Status(request.URL.Query().Get("status")),
		ProviderID: request.URL.Query().Get("provider_id"),
		Region:     coverage.Region(request.URL.Query().Get("region")),
	}

	services, total, err := handler.service.ListServices(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, services, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	sp, err := handler.service.GetService(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sp)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	sp := &ServiceProduct{}
	if err := requestutil.DecodeJSON(request, sp); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateService(request.Context(), sp); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, sp)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	sp := &ServiceProduct{}
	if err := requestutil.DecodeJSON(request, sp); err != nil {
		respond.Error(writer, request, err)
		return
	}
	sp.ID = requestutil.ID(request, "id")

	if err := handler.service.UpdateService(request.Context(), sp); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sp)
}

func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ArchiveService(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) previewCoverage(writer http.ResponseWriter, request *http.Request) {
	effective, err := handler.service.PreviewCoverage(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, coverageBody(effective))
}

func (handler *Handler) getDeltas(writer http.ResponseWriter, request *http.Request) {
	deltas, err := handler.service.GetDeltas(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if deltas == nil {
		deltas = []coverage.Delta{}
	}
	respond.OK(writer, deltas)
}

func (handler *Handler) setDeltas(writer http.ResponseWriter, request *http.Request) {
	var deltas []coverage.Delta
	if err := requestutil.DecodeJSON(request, &deltas); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceID := requestutil.ID(request, "id")
	if err := handler.service.SetDeltas(request.Context(), serviceID, deltas); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deltas)
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

// coverageReportBody is the wire shape of a resolved coverage set.
type coverageReportBody struct {
	Regions []coverage.Region `json:"regions"`
}

func coverageBody(regions []coverage.Region) coverageReportBody {
	if regions == nil {
		regions = []coverage.Region{}
	}
	return coverageReportBody{Regions: regions}
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
