package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supplyledger/internal/transfer/metrics"
	"supplyledger/internal/transfer/models"
	"supplyledger/internal/transfer/ports"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/sentinel"
	"supplyledger/pkg/platform/tracing"
	"supplyledger/pkg/platform/tx"
	"supplyledger/pkg/requestcontext"
)

// TransferStore persists transfer requests.
type TransferStore interface {
	Create(ctx context.Context, t *models.TransferRequest) error
	FindByID(ctx context.Context, id domain.TransferID) (*models.TransferRequest, error)
	Update(ctx context.Context, t *models.TransferRequest) error
	ListForPrincipal(ctx context.Context, principal domain.Principal) ([]domain.TransferID, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) (audit.Event, error)
}

// Service runs the two-phase transfer protocol: a sender proposes, the
// recipient accepts or rejects, and balances move only on acceptance.
type Service struct {
	transfers TransferStore
	members   ports.MemberPort
	ledger    ports.LedgerPort
	tx        tx.Runner
	publisher AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(transfers TransferStore, members ports.MemberPort, ledger ports.LedgerPort, runner tx.Runner, opts ...Option) (*Service, error) {
	if transfers == nil {
		return nil, errors.New("transfer store is required")
	}
	if members == nil {
		return nil, errors.New("member port is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger port is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	s := &Service{
		transfers: transfers,
		members:   members,
		ledger:    ledger,
		tx:        runner,
		logger:    slog.Default(),
		tracer:    tracing.Tracer("supplyledger/transfer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initiate records a pending transfer from sender. No balance changes until
// the recipient accepts.
func (s *Service) Initiate(ctx context.Context, from domain.Principal, req models.InitiateRequest) (_ *models.TransferRequest, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "transfer.Initiate",
		attribute.String("from", from.String()),
		attribute.String("to", req.To.String()),
		attribute.Int64("token_id", int64(req.TokenID)),
	)
	defer func() { end(err) }()

	var created *models.TransferRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkInitiate(txCtx, from, req); err != nil {
			return err
		}

		t := models.NewTransferRequest(from, req, requestcontext.Now(txCtx))
		if err := s.transfers.Create(txCtx, t); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create transfer")
		}
		if err := s.emit(txCtx, audit.TransferRequested(t.ID, t.From, t.To, t.TokenID, t.Amount)); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "initiate", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementInitiated()
	}
	return created, nil
}

// checkInitiate runs the preconditions in their fixed order so the same input
// against the same state always yields the same error.
func (s *Service) checkInitiate(ctx context.Context, from domain.Principal, req models.InitiateRequest) error {
	if from == req.To {
		return dErrors.New(dErrors.CodeSelfTransfer, "sender and recipient are the same principal")
	}
	fromRole, err := s.members.RequireApproved(ctx, from)
	if err != nil {
		return err
	}
	if err := models.CheckSender(fromRole); err != nil {
		return err
	}
	toRole, err := s.members.RequireApproved(ctx, req.To)
	if err != nil {
		return err
	}
	if err := models.CheckRoleFlow(fromRole, toRole); err != nil {
		return err
	}
	if err := s.ledger.TokenClassExists(ctx, req.TokenID); err != nil {
		return err
	}
	if req.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "amount must be positive")
	}
	balance, err := s.ledger.Balance(ctx, req.TokenID, from)
	if err != nil {
		return err
	}
	if balance < req.Amount {
		return dErrors.Newf(dErrors.CodeInsufficientBalance, "balance %d does not cover %d", balance, req.Amount)
	}
	return nil
}

// Accept settles a pending transfer: units move from sender to recipient and
// the request becomes accepted, atomically. The sender's balance is checked
// again because it may have been committed to other transfers meanwhile.
func (s *Service) Accept(ctx context.Context, caller domain.Principal, id domain.TransferID) (_ *models.TransferRequest, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "transfer.Accept",
		attribute.String("caller", caller.String()),
		attribute.Int64("transfer_id", int64(id)),
	)
	defer func() { end(err) }()

	var settled *models.TransferRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadForSettlement(txCtx, caller, id)
		if err != nil {
			return err
		}
		if err := s.ledger.Move(txCtx, t.TokenID, t.From, t.To, t.Amount); err != nil {
			return err
		}
		t.Accept(requestcontext.Now(txCtx))
		if err := s.transfers.Update(txCtx, t); err != nil {
			return wrapTransferErr(err)
		}
		if err := s.emit(txCtx, audit.TransferAccepted(t.ID, caller)); err != nil {
			return err
		}
		settled = t
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "accept", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementAccepted(settled.Amount)
	}
	return settled, nil
}

// Reject closes a pending transfer without moving any units.
func (s *Service) Reject(ctx context.Context, caller domain.Principal, id domain.TransferID) (_ *models.TransferRequest, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "transfer.Reject",
		attribute.String("caller", caller.String()),
		attribute.Int64("transfer_id", int64(id)),
	)
	defer func() { end(err) }()

	var settled *models.TransferRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadForSettlement(txCtx, caller, id)
		if err != nil {
			return err
		}
		t.Reject(requestcontext.Now(txCtx))
		if err := s.transfers.Update(txCtx, t); err != nil {
			return wrapTransferErr(err)
		}
		if err := s.emit(txCtx, audit.TransferRejected(t.ID, caller)); err != nil {
			return err
		}
		settled = t
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "reject", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSettled(models.StatusRejected.String())
	}
	return settled, nil
}

// Get returns the transfer with id.
func (s *Service) Get(ctx context.Context, id domain.TransferID) (*models.TransferRequest, error) {
	var found *models.TransferRequest
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		t, err := s.transfers.FindByID(viewCtx, id)
		if err != nil {
			return wrapTransferErr(err)
		}
		found = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ForPrincipal lists the transfers principal sent or received, oldest first.
func (s *Service) ForPrincipal(ctx context.Context, principal domain.Principal) ([]domain.TransferID, error) {
	var ids []domain.TransferID
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		list, err := s.transfers.ListForPrincipal(viewCtx, principal)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transfers")
		}
		ids = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) loadForSettlement(ctx context.Context, caller domain.Principal, id domain.TransferID) (*models.TransferRequest, error) {
	t, err := s.transfers.FindByID(ctx, id)
	if err != nil {
		return nil, wrapTransferErr(err)
	}
	if err := t.CanSettle(caller); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) error {
	if s.publisher == nil {
		return nil
	}
	if _, err := s.publisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record notification")
	}
	return nil
}

func (s *Service) observeRejected(ctx context.Context, operation string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		s.logger.ErrorContext(ctx, "transfer operation failed",
			"operation", operation,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementRejected(operation, string(code))
	}
}

func wrapTransferErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "transfer not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "transfer store failure")
}
