// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prefabrica/prefabrica/internal/platform/middleware"
	requestutil "github.com/prefabrica/prefabrica/internal/platform/request"
	"github.com/prefabrica/prefabrica/internal/platform/respond"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/query"
	"github.com/prefabrica/prefabrica/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the media asset router. All routes require editor access.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleEditor))

	router.Get("/{ownerType}/{ownerID}", handler.list)
	router.Post("/", handler.attach)
	router.Delete("/{id}", handler.detach)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerType := publish.EntityType(requestutil.Param(request, "ownerType"))
	ownerID := requestutil.Param(request, "ownerID")

	assets, err := handler.service.ListAssets(request.Context(), ownerType, ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Optional ?roles=thumbnail,gallery narrows the listing.
	if roles := query.StringSlice(request.URL.Query().Get("roles")); len(roles) > 0 {
		wanted := make(map[publish.MediaRole]bool, len(roles))
		for _, role := range roles {
			wanted[publish.MediaRole(role)] = true
		}
		assets = slice.Filter(assets, func(asset Asset) bool { return wanted[asset.Role] })
	}

	respond.OK(writer, assets)
}

func (handler *Handler) attach(writer http.ResponseWriter, request *http.Request) {
	asset := &Asset{}
	if err := requestutil.DecodeJSON(request, asset); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Attach(request.Context(), asset); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, asset)
}

func (handler *Handler) detach(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Detach(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
