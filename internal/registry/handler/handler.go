package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplyledger/internal/registry/models"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	"supplyledger/pkg/platform/httputil"
	"supplyledger/pkg/platform/middleware/auth"
	"supplyledger/pkg/requestcontext"
)

// Service defines the registry operations exposed over HTTP.
type Service interface {
	RequestRole(ctx context.Context, principal domain.Principal, role domain.Role) (*models.Member, error)
	SetStatus(ctx context.Context, caller, principal domain.Principal, status models.Status) (*models.Member, error)
	Lookup(ctx context.Context, principal domain.Principal) (*models.Member, error)
	ListMembers(ctx context.Context, caller domain.Principal, status models.Status) ([]*models.Member, error)
}

// Handler serves the membership endpoints.
type Handler struct {
	registry Service
	logger   *slog.Logger
}

func New(registry Service, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the member routes. Callers must already be authenticated.
func (h *Handler) Register(r chi.Router) {
	r.Post("/members", h.handleRequestRole)
	r.Get("/members", h.handleListMembers)
	r.Get("/members/{principal}", h.handleLookup)
	r.Put("/members/{principal}/status", h.handleSetStatus)
}

func (h *Handler) handleRequestRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RequestRoleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		h.writeError(ctx, w, "request role", err)
		return
	}

	member, err := h.registry.RequestRole(ctx, auth.GetPrincipal(ctx), role)
	if err != nil {
		h.writeError(ctx, w, "request role", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toMemberResponse(member))
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	member, err := h.registry.Lookup(ctx, principal)
	if err != nil {
		h.writeError(ctx, w, "lookup member", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req SetStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	member, err := h.registry.SetStatus(ctx, auth.GetPrincipal(ctx), principal, models.Status(req.Status))
	if err != nil {
		h.writeError(ctx, w, "set member status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	members, err := h.registry.ListMembers(ctx, auth.GetPrincipal(ctx), models.Status(r.URL.Query().Get("status")))
	if err != nil {
		h.writeError(ctx, w, "list members", err)
		return
	}

	resp := MemberListResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+action,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
