package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/httputil"
	"supplyledger/pkg/requestcontext"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Journal reads notifications in sequence order.
type Journal interface {
	List(ctx context.Context, after uint64, limit int) ([]audit.Event, error)
}

// Handler serves the notification feed.
type Handler struct {
	journal Journal
	logger  *slog.Logger
}

func New(journal Journal, logger *slog.Logger) *Handler {
	return &Handler{journal: journal, logger: logger}
}

// Register mounts GET /notifications.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleList)
}

// ListResponse carries one page of the journal. Next is the cursor for the
// following page and equals the request cursor when the page is empty.
type ListResponse struct {
	Events []audit.Event `json:"events"`
	Next   uint64        `json:"next"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	after, limit, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.journal.List(ctx, after, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications"))
		return
	}

	resp := ListResponse{Events: events, Next: after}
	if resp.Events == nil {
		resp.Events = []audit.Event{}
	}
	if n := len(events); n > 0 {
		resp.Next = events[n-1].Seq
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func parsePage(r *http.Request) (uint64, int, error) {
	q := r.URL.Query()
	var after uint64
	if raw := q.Get("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeInvalidInput, "after must be a non-negative integer")
		}
		after = v
	}
	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer")
		}
		limit = min(v, maxLimit)
	}
	return after, limit, nil
}
