package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"warishd/internal/platform/middleware"
	"warishd/internal/transport/http/shared"
	"warishd/internal/warish/forest"
	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
	"warishd/pkg/requestcontext"
)

// Service defines the heir operations the HTTP layer depends on.
type Service interface {
	LoadForest(ctx context.Context, applicationID domain.ApplicationID) (*forest.Forest, error)
	ListHeirs(ctx context.Context, applicationID domain.ApplicationID) ([]*models.HeirRecord, error)
	CreateHeir(ctx context.Context, applicationID domain.ApplicationID, req *models.CreateHeirRequest) (*models.HeirRecord, error)
	UpdateHeir(ctx context.Context, id domain.HeirID, req *models.UpdateHeirRequest) (*models.HeirRecord, error)
	DeleteHeir(ctx context.Context, id domain.HeirID) (*models.DeleteHeirResult, error)
}

// Handler is the presentation boundary for the heir tree. It renders the
// assembled forest and forwards every mutation to the engine; clients re-read
// the forest after each change.
type Handler struct {
	logger *slog.Logger
	heirs  Service
}

// New creates a heir Handler.
func New(heirs Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, heirs: heirs}
}

// Register mounts the heir routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(router chi.Router) {
		router.Use(middleware.Recovery(h.logger))
		router.Use(middleware.RequestID)
		router.Use(middleware.RequestTime)
		router.Use(middleware.Logger(h.logger))
		router.Use(middleware.Timeout(30 * time.Second))
		router.Use(middleware.ContentTypeJSON)

		router.Get("/applications/{applicationID}/heirs", h.handleGetForest)
		router.Post("/applications/{applicationID}/heirs", h.handleCreateHeir)
		router.Patch("/applications/{applicationID}/heirs/{heirID}", h.handleUpdateHeir)
		router.Delete("/applications/{applicationID}/heirs/{heirID}", h.handleDeleteHeir)
	})
}

// handleGetForest returns the assembled forest; ?view=flat returns the raw
// records instead, for the export surface.
func (h *Handler) handleGetForest(w http.ResponseWriter, r *http.Request) {
	applicationID, err := domain.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if r.URL.Query().Get("view") == "flat" {
		records, err := h.heirs.ListHeirs(r.Context(), applicationID)
		if err != nil {
			h.logError(r.Context(), "failed to list heirs", err)
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, map[string]any{"heirs": records})
		return
	}

	f, err := h.heirs.LoadForest(r.Context(), applicationID)
	if err != nil {
		h.logError(r.Context(), "failed to load forest", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleCreateHeir(w http.ResponseWriter, r *http.Request) {
	applicationID, err := domain.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.CreateHeirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.heirs.CreateHeir(r.Context(), applicationID, &req)
	if err != nil {
		h.logError(r.Context(), "failed to create heir", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleUpdateHeir(w http.ResponseWriter, r *http.Request) {
	heirID, err := domain.ParseHeirID(chi.URLParam(r, "heirID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.UpdateHeirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.heirs.UpdateHeir(r.Context(), heirID, &req)
	if err != nil {
		h.logError(r.Context(), "failed to update heir", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDeleteHeir(w http.ResponseWriter, r *http.Request) {
	heirID, err := domain.ParseHeirID(chi.URLParam(r, "heirID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.heirs.DeleteHeir(r.Context(), heirID)
	if err != nil {
		h.logError(r.Context(), "failed to delete heir", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	if h.logger == nil {
		return
	}
	log := h.logger.WarnContext
	if dErrors.CodeOf(err) == dErrors.CodeInternal || dErrors.CodeOf(err) == dErrors.CodeCascadeFailure {
		log = h.logger.ErrorContext
	}
	log(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err.Error())
}
