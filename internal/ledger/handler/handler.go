package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	"supplyledger/pkg/platform/httputil"
	"supplyledger/pkg/platform/middleware/auth"
	"supplyledger/pkg/requestcontext"
)

// Service defines the ledger operations exposed over HTTP.
type Service interface {
	Mint(ctx context.Context, creator domain.Principal, req models.MintRequest) (*models.TokenClass, error)
	GetTokenClass(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error)
	GetBalance(ctx context.Context, id domain.TokenClassID, principal domain.Principal) (uint64, error)
	OwnedClasses(ctx context.Context, principal domain.Principal) ([]domain.TokenClassID, error)
	Lineage(ctx context.Context, id domain.TokenClassID) ([]*models.TokenClass, error)
}

// Handler serves the token class and balance endpoints.
type Handler struct {
	ledger Service
	logger *slog.Logger
}

func New(ledger Service, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

// Register mounts the ledger routes. Callers must already be authenticated.
func (h *Handler) Register(r chi.Router) {
	r.Post("/token-classes", h.handleMint)
	r.Get("/token-classes/{id}", h.handleGetTokenClass)
	r.Get("/token-classes/{id}/lineage", h.handleLineage)
	r.Get("/token-classes/{id}/balances/{principal}", h.handleGetBalance)
	r.Get("/holders/{principal}/token-classes", h.handleOwnedClasses)
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req MintRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	tc, err := h.ledger.Mint(ctx, auth.GetPrincipal(ctx), req.toModel())
	if err != nil {
		h.writeError(ctx, w, "mint token class", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTokenClassResponse(tc))
}

func (h *Handler) handleGetTokenClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseTokenClassID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tc, err := h.ledger.GetTokenClass(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "get token class", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTokenClassResponse(tc))
}

func (h *Handler) handleLineage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseTokenClassID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	chain, err := h.ledger.Lineage(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "walk lineage", err)
		return
	}
	resp := LineageResponse{Chain: make([]TokenClassResponse, 0, len(chain))}
	for _, tc := range chain {
		resp.Chain = append(resp.Chain, toTokenClassResponse(tc))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseTokenClassID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	amount, err := h.ledger.GetBalance(ctx, id, principal)
	if err != nil {
		h.writeError(ctx, w, "get balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{TokenClassID: id, Principal: principal, Amount: amount})
}

func (h *Handler) handleOwnedClasses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ids, err := h.ledger.OwnedClasses(ctx, principal)
	if err != nil {
		h.writeError(ctx, w, "list owned classes", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnedClassesResponse{Principal: principal, TokenClasses: ids})
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
