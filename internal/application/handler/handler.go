package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"warishd/internal/application/models"
	"warishd/internal/platform/middleware"
	"warishd/internal/transport/http/shared"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

// Service defines the application operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, req *models.CreateApplicationRequest) (*models.Application, error)
	Get(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	Approve(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
	Reject(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
}

// Handler exposes the estate application lifecycle over HTTP.
type Handler struct {
	logger *slog.Logger
	apps   Service
}

// New creates an application Handler.
func New(apps Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, apps: apps}
}

// Register mounts the application routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(router chi.Router) {
		router.Use(middleware.Recovery(h.logger))
		router.Use(middleware.RequestID)
		router.Use(middleware.RequestTime)
		router.Use(middleware.Logger(h.logger))
		router.Use(middleware.Timeout(30 * time.Second))
		router.Use(middleware.ContentTypeJSON)

		router.Get("/applications", h.handleList)
		router.Post("/applications", h.handleCreate)
		router.Get("/applications/{applicationID}", h.handleGet)
		router.Post("/applications/{applicationID}/approve", h.handleApprove)
		router.Post("/applications/{applicationID}/reject", h.handleReject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.apps.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"applications": recs})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	rec, err := h.apps.Create(r.Context(), &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	rec, err := h.apps.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.apps.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.apps.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.ApplicationID) (*models.Application, error)) {
	id, err := domain.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	rec, err := fn(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}
