package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplyledger/internal/transfer/models"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	"supplyledger/pkg/platform/httputil"
	"supplyledger/pkg/platform/middleware/auth"
	"supplyledger/pkg/requestcontext"
)

// Service defines the transfer operations exposed over HTTP.
type Service interface {
	Initiate(ctx context.Context, from domain.Principal, req models.InitiateRequest) (*models.TransferRequest, error)
	Accept(ctx context.Context, caller domain.Principal, id domain.TransferID) (*models.TransferRequest, error)
	Reject(ctx context.Context, caller domain.Principal, id domain.TransferID) (*models.TransferRequest, error)
	Get(ctx context.Context, id domain.TransferID) (*models.TransferRequest, error)
	ForPrincipal(ctx context.Context, principal domain.Principal) ([]domain.TransferID, error)
}

// Handler serves the transfer endpoints.
type Handler struct {
	transfers Service
	logger    *slog.Logger
}

func New(transfers Service, logger *slog.Logger) *Handler {
	return &Handler{transfers: transfers, logger: logger}
}

// Register mounts the transfer routes. Callers must already be authenticated.
func (h *Handler) Register(r chi.Router) {
	r.Post("/transfers", h.handleInitiate)
	r.Get("/transfers/{id}", h.handleGet)
	r.Post("/transfers/{id}/accept", h.handleAccept)
	r.Post("/transfers/{id}/reject", h.handleReject)
	r.Get("/holders/{principal}/transfers", h.handleForPrincipal)
}

func (h *Handler) handleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req InitiateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := domain.ParsePrincipal(req.To)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.transfers.Initiate(ctx, auth.GetPrincipal(ctx), models.InitiateRequest{
		To:      to,
		TokenID: domain.TokenClassID(req.TokenID),
		Amount:  req.Amount,
	})
	if err != nil {
		h.writeError(ctx, w, "initiate transfer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toTransferResponse(t))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseTransferID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.transfers.Get(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "get transfer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransferResponse(t))
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, "accept transfer", h.transfers.Accept)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, "reject transfer", h.transfers.Reject)
}

type settleFunc func(ctx context.Context, caller domain.Principal, id domain.TransferID) (*models.TransferRequest, error)

func (h *Handler) settle(w http.ResponseWriter, r *http.Request, action string, fn settleFunc) {
	ctx := r.Context()
	id, err := domain.ParseTransferID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := fn(ctx, auth.GetPrincipal(ctx), id)
	if err != nil {
		h.writeError(ctx, w, action, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTransferResponse(t))
}

func (h *Handler) handleForPrincipal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ids, err := h.transfers.ForPrincipal(ctx, principal)
	if err != nil {
		h.writeError(ctx, w, "list transfers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferListResponse{Principal: principal, Transfers: ids})
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
