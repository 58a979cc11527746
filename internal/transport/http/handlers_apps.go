package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"session-server/internal/apps"
	"session-server/internal/platform/middleware"
	pkgerrors "session-server/pkg/errors"
)

// AppsService is the slice of the apps service the handler depends on.
type AppsService interface {
	List(ctx context.Context) ([]apps.App, error)
	Create(ctx context.Context, req apps.CreateRequest) (*apps.App, error)
	Delete(ctx context.Context, id int64) error
}

type AppsHandler struct {
	apps   AppsService
	logger *slog.Logger
}

func NewAppsHandler(svc AppsService, logger *slog.Logger) *AppsHandler {
	return &AppsHandler{apps: svc, logger: logger}
}

// Register mounts the apps routes.
func (h *AppsHandler) Register(r chi.Router) {
	r.Get("/apps", h.handleList)
	r.Post("/apps", h.handleCreate)
	r.Delete("/apps/{id}", h.handleDelete)
}

func (h *AppsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.apps.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "apps list failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AppsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req apps.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "Invalid request body"))
		return
	}

	created, err := h.apps.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AppsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeNotFound, "App not found"))
		return
	}
	if err := h.apps.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "App deleted successfully"})
}
