package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supplyledger/internal/ledger/metrics"
	"supplyledger/internal/ledger/models"
	"supplyledger/internal/ledger/ports"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/sentinel"
	"supplyledger/pkg/platform/tracing"
	"supplyledger/pkg/platform/tx"
	"supplyledger/pkg/requestcontext"
)

// TokenClassStore persists immutable token classes.
type TokenClassStore interface {
	Create(ctx context.Context, tc *models.TokenClass) error
	FindByID(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error)
}

// HoldingStore keeps balances and the owned-assets index derived from them.
type HoldingStore interface {
	Balance(ctx context.Context, token domain.TokenClassID, principal domain.Principal) (uint64, error)
	SetBalance(ctx context.Context, token domain.TokenClassID, principal domain.Principal, amount uint64) error
	Holders(ctx context.Context, token domain.TokenClassID) ([]models.Holding, error)
	HoldingsOf(ctx context.Context, principal domain.Principal) ([]models.Holding, error)
	AddOwned(ctx context.Context, principal domain.Principal, token domain.TokenClassID) error
	RemoveOwned(ctx context.Context, principal domain.Principal, token domain.TokenClassID) error
	Owned(ctx context.Context, principal domain.Principal) ([]domain.TokenClassID, error)
	ReplaceOwned(ctx context.Context, principal domain.Principal, ids []domain.TokenClassID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) (audit.Event, error)
}

// Service is the asset ledger: it mints lineage-linked token classes and
// keeps per-holder balances.
type Service struct {
	classes   TokenClassStore
	holdings  HoldingStore
	members   ports.MemberPort
	tx        tx.Runner
	lineage   models.LineagePolicy
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

// WithLineagePolicy selects how mint parents are checked. Strict is the
// default.
func WithLineagePolicy(p models.LineagePolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.lineage = p
		}
	}
}

func New(classes TokenClassStore, holdings HoldingStore, members ports.MemberPort, runner tx.Runner, opts ...Option) (*Service, error) {
	if classes == nil {
		return nil, errors.New("token class store is required")
	}
	if holdings == nil {
		return nil, errors.New("holding store is required")
	}
	if members == nil {
		return nil, errors.New("member port is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	s := &Service{
		classes:  classes,
		holdings: holdings,
		members:  members,
		tx:       runner,
		lineage:  models.StrictLineage{},
		logger:   slog.Default(),
		tracer:   tracing.Tracer("supplyledger/ledger"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Mint creates a token class owned entirely by creator. Checks run in a fixed
// order: membership, role, name, supply, lineage.
func (s *Service) Mint(ctx context.Context, creator domain.Principal, req models.MintRequest) (_ *models.TokenClass, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "ledger.Mint",
		attribute.String("creator", creator.String()),
		attribute.Int64("parent_id", int64(req.ParentID)),
	)
	defer func() { end(err) }()

	var minted *models.TokenClass
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		role, err := s.members.RequireApproved(txCtx, creator)
		if err != nil {
			return err
		}
		kind, err := models.KindForRole(role)
		if err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}
		if err := s.lineage.CheckParent(role, req.ParentID, s.parentFinder(txCtx)); err != nil {
			return err
		}

		tc := models.NewTokenClass(creator, kind, req, requestcontext.Now(txCtx))
		if err := s.classes.Create(txCtx, tc); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create token class")
		}
		if err := s.holdings.SetBalance(txCtx, tc.ID, creator, tc.TotalSupply); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit creator")
		}
		if err := s.holdings.AddOwned(txCtx, creator, tc.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to index token class")
		}
		if err := s.emit(txCtx, audit.TokenClassMinted(tc.ID, creator, tc.Name, tc.TotalSupply)); err != nil {
			return err
		}
		minted = tc
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "mint", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementMinted(minted.Kind.String(), minted.TotalSupply)
	}
	return minted, nil
}

// GetTokenClass returns the class with id.
func (s *Service) GetTokenClass(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error) {
	var tc *models.TokenClass
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		found, err := s.findClass(viewCtx, id)
		if err != nil {
			return err
		}
		tc = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// GetBalance returns principal's balance of class id. Principals that never
// held the class have a zero balance; an unknown class is NotFound.
func (s *Service) GetBalance(ctx context.Context, id domain.TokenClassID, principal domain.Principal) (uint64, error) {
	var amount uint64
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		if _, err := s.findClass(viewCtx, id); err != nil {
			return err
		}
		bal, err := s.holdings.Balance(viewCtx, id, principal)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read balance")
		}
		amount = bal
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// Holders lists the non-zero balances of class id.
func (s *Service) Holders(ctx context.Context, id domain.TokenClassID) ([]models.Holding, error) {
	var holders []models.Holding
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		if _, err := s.findClass(viewCtx, id); err != nil {
			return err
		}
		list, err := s.holdings.Holders(viewCtx, id)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list holders")
		}
		holders = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holders, nil
}

// OwnedClasses returns the classes principal holds a positive balance of, in
// ascending id order.
func (s *Service) OwnedClasses(ctx context.Context, principal domain.Principal) ([]domain.TokenClassID, error) {
	var ids []domain.TokenClassID
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		owned, err := s.holdings.Owned(viewCtx, principal)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read owned assets")
		}
		ids = owned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Lineage walks parent pointers from id to its root. The first element is
// the class itself, the last is a root.
func (s *Service) Lineage(ctx context.Context, id domain.TokenClassID) ([]*models.TokenClass, error) {
	var chain []*models.TokenClass
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		current, err := s.findClass(viewCtx, id)
		if err != nil {
			return err
		}
		chain = append(chain, current)
		for !current.IsRoot() {
			// parents always have smaller ids, so the walk terminates
			if current.ParentID >= current.ID {
				return dErrors.Newf(dErrors.CodeInvariantViolation, "token class %s names parent %s", current.ID, current.ParentID)
			}
			parent, err := s.classes.FindByID(viewCtx, current.ParentID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "lineage references a missing token class")
			}
			chain = append(chain, parent)
			current = parent
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chain, nil
}

// Move shifts amount units of class id from one holder to another and keeps
// the owned-assets index in step. It must run inside the caller's unit of
// work; the transfer workflow calls it when a request is accepted.
func (s *Service) Move(ctx context.Context, id domain.TokenClassID, from, to domain.Principal, amount uint64) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if amount == 0 {
			return dErrors.New(dErrors.CodeInvalidAmount, "amount must be positive")
		}
		if from == to {
			return dErrors.New(dErrors.CodeSelfTransfer, "cannot move units to the same holder")
		}
		fromBal, err := s.holdings.Balance(txCtx, id, from)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read sender balance")
		}
		if fromBal < amount {
			return dErrors.Newf(dErrors.CodeInsufficientBalance, "balance %d does not cover %d", fromBal, amount)
		}
		toBal, err := s.holdings.Balance(txCtx, id, to)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read recipient balance")
		}

		if err := s.holdings.SetBalance(txCtx, id, from, fromBal-amount); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit sender")
		}
		if err := s.holdings.SetBalance(txCtx, id, to, toBal+amount); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit recipient")
		}
		if fromBal == amount {
			if err := s.holdings.RemoveOwned(txCtx, from, id); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to unindex sender")
			}
		}
		if toBal == 0 {
			if err := s.holdings.AddOwned(txCtx, to, id); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to index recipient")
			}
		}
		return nil
	})
}

// RebuildOwnedIndex recomputes principal's owned-assets index from balances
// and returns what had drifted. An empty drift means the index was correct.
func (s *Service) RebuildOwnedIndex(ctx context.Context, principal domain.Principal) (_ models.IndexDrift, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "ledger.RebuildOwnedIndex",
		attribute.String("principal", principal.String()),
	)
	defer func() { end(err) }()

	drift := models.IndexDrift{Principal: principal, Missing: []domain.TokenClassID{}, Stale: []domain.TokenClassID{}}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		holdings, err := s.holdings.HoldingsOf(txCtx, principal)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read holdings")
		}
		indexed, err := s.holdings.Owned(txCtx, principal)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read owned assets")
		}

		want := make([]domain.TokenClassID, 0, len(holdings))
		held := make(map[domain.TokenClassID]bool, len(holdings))
		for _, h := range holdings {
			want = append(want, h.TokenClassID)
			held[h.TokenClassID] = true
		}
		seen := make(map[domain.TokenClassID]bool, len(indexed))
		for _, id := range indexed {
			seen[id] = true
			if !held[id] {
				drift.Stale = append(drift.Stale, id)
			}
		}
		for _, id := range want {
			if !seen[id] {
				drift.Missing = append(drift.Missing, id)
			}
		}
		if drift.IsEmpty() {
			return nil
		}
		if err := s.holdings.ReplaceOwned(txCtx, principal, want); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to rebuild owned assets")
		}
		return nil
	})
	if err != nil {
		return models.IndexDrift{}, err
	}

	if !drift.IsEmpty() {
		s.logger.WarnContext(ctx, "owned-assets index drift corrected",
			"principal", principal,
			"missing", drift.Missing,
			"stale", drift.Stale,
		)
		if s.metrics != nil {
			s.metrics.AddIndexDrift(len(drift.Missing) + len(drift.Stale))
		}
	}
	return drift, nil
}

func (s *Service) findClass(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error) {
	tc, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "token class %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load token class")
	}
	return tc, nil
}

func (s *Service) parentFinder(ctx context.Context) models.ParentFinder {
	return func(id domain.TokenClassID) (*models.TokenClass, error) {
		tc, err := s.classes.FindByID(ctx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load parent token class")
		}
		return tc, nil
	}
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
		s.logger.ErrorContext(ctx, "ledger operation failed",
			"operation", operation,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementRejected(operation, string(code))
	}
}
