// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prefabrica/prefabrica/internal/platform/middleware"
	requestutil "github.com/prefabrica/prefabrica/internal/platform/request"
	"github.com/prefabrica/prefabrica/internal/platform/respond"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/internal/publish"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the slot router: a public homepage read path and an
// admin-only management group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint consumed by the homepage renderer
	router.Get("/visible", handler.visible)

	// Admin management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{id}", handler.get)
		r.Put("/{id}", handler.update)
		r.Patch("/{id}/active", handler.setActive)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

func (handler *Handler) visible(writer http.ResponseWriter, request *http.Request) {
	homepage, err := handler.service.HomepageSlots(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, homepage)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	slotType := publish.Tier(request.URL.Query().Get("type"))

	pool, err := handler.service.ListSlots(request.Context(), slotType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pool)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	slot, err := handler.service.GetSlot(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slot)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	slot := &Slot{}
	if err := requestutil.DecodeJSON(request, slot); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateSlot(request.Context(), slot); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, slot)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	slot := &Slot{}
	if err := requestutil.DecodeJSON(request, slot); err != nil {
		respond.Error(writer, request, err)
		return
	}
	slot.ID = requestutil.ID(request, "id")

	if err := handler.service.UpdateSlot(request.Context(), slot); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slot)
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	payload := struct {
		IsActive bool `json:"is_active"`
	}{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.service.SetSlotActive(request.Context(), requestutil.ID(request, "id"), payload.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSlot(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
