package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supplyledger/internal/registry/metrics"
	"supplyledger/internal/registry/models"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/sentinel"
	"supplyledger/pkg/platform/tracing"
	"supplyledger/pkg/platform/tx"
	"supplyledger/pkg/requestcontext"
)

// MemberStore persists membership records. Implementations return sentinel
// errors; the service translates them.
type MemberStore interface {
	Create(ctx context.Context, m *models.Member) error
	FindByPrincipal(ctx context.Context, principal domain.Principal) (*models.Member, error)
	Update(ctx context.Context, m *models.Member) error
	List(ctx context.Context, status models.Status) ([]*models.Member, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) (audit.Event, error)
}

// Service is the identity registry: it maps principals to a requested role and
// an admin-controlled approval status, and gates every other operation.
type Service struct {
	members   MemberStore
	tx        tx.Runner
	admin     domain.Principal
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

// New constructs the registry. The admin principal is fixed for the life of
// the service.
func New(members MemberStore, runner tx.Runner, admin domain.Principal, opts ...Option) (*Service, error) {
	if members == nil {
		return nil, errors.New("member store is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	if admin.IsNil() {
		return nil, errors.New("admin principal is required")
	}
	s := &Service{
		members: members,
		tx:      runner,
		admin:   admin,
		logger:  slog.Default(),
		tracer:  tracing.Tracer("supplyledger/registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RequestRole registers principal as a pending member with the requested role.
func (s *Service) RequestRole(ctx context.Context, principal domain.Principal, role domain.Role) (_ *models.Member, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "registry.RequestRole",
		attribute.String("principal", principal.String()),
		attribute.String("role", role.String()),
	)
	defer func() { end(err) }()

	var member *models.Member
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := models.NewMember(principal, role, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}

		if _, err := s.members.FindByPrincipal(txCtx, principal); err == nil {
			return dErrors.New(dErrors.CodeAlreadyRegistered, "principal already has a membership record")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up member")
		}

		if err := s.members.Create(txCtx, m); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeAlreadyRegistered, "principal already has a membership record")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
		}

		if err := s.emit(txCtx, audit.MemberRequested(m.Principal, m.Role)); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "request_role", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRoleRequested(member.Role.String())
	}
	return member, nil
}

// SetStatus lets the admin overwrite a member's status. Any status may be set
// except pending.
func (s *Service) SetStatus(ctx context.Context, caller, principal domain.Principal, status models.Status) (_ *models.Member, err error) {
	ctx, end := tracing.Start(ctx, s.tracer, "registry.SetStatus",
		attribute.String("principal", principal.String()),
		attribute.String("status", status.String()),
	)
	defer func() { end(err) }()

	var member *models.Member
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if !s.IsAdmin(caller) {
			return dErrors.New(dErrors.CodeUnauthorized, "only the admin may change member status")
		}

		m, err := s.members.FindByPrincipal(txCtx, principal)
		if err != nil {
			return wrapMemberErr(err, dErrors.CodeNotFound)
		}

		if err := m.CanSetStatus(status); err != nil {
			return err
		}
		m.ApplyStatus(status, requestcontext.Now(txCtx))

		if err := s.members.Update(txCtx, m); err != nil {
			return wrapMemberErr(err, dErrors.CodeNotFound)
		}
		if err := s.emit(txCtx, audit.MemberStatusChanged(m.Principal, m.Status.String())); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		s.observeRejected(ctx, "set_status", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStatusChanged(member.Status.String())
	}
	return member, nil
}

// Lookup returns the member record for principal.
func (s *Service) Lookup(ctx context.Context, principal domain.Principal) (*models.Member, error) {
	var member *models.Member
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		m, err := s.members.FindByPrincipal(viewCtx, principal)
		if err != nil {
			return wrapMemberErr(err, dErrors.CodeNotFound)
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// IsAdmin reports whether principal is the fixed admin.
func (s *Service) IsAdmin(principal domain.Principal) bool {
	return !principal.IsNil() && principal == s.admin
}

// Admin returns the configured admin principal.
func (s *Service) Admin() domain.Principal {
	return s.admin
}

// RequireApproved resolves principal to an approved member. It is the gate the
// ledger and transfer workflow call before mutating their own state, and joins
// the caller's unit of work when there is one.
func (s *Service) RequireApproved(ctx context.Context, principal domain.Principal) (*models.Member, error) {
	if s.metrics != nil {
		defer s.metrics.ObserveRequireApproved(time.Now())
	}
	var member *models.Member
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		m, err := s.members.FindByPrincipal(viewCtx, principal)
		if err != nil {
			return wrapMemberErr(err, dErrors.CodeNotRegistered)
		}
		if !m.IsApproved() {
			return dErrors.Newf(dErrors.CodeNotApproved, "member %s is %s", principal, m.Status)
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers returns members in id order; an empty status lists everyone.
func (s *Service) ListMembers(ctx context.Context, caller domain.Principal, status models.Status) ([]*models.Member, error) {
	if !s.IsAdmin(caller) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the admin may list members")
	}
	if status != "" && !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidStatus, "unsupported status %q", status)
	}
	var members []*models.Member
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		list, err := s.members.List(viewCtx, status)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list members")
		}
		members = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
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
		s.logger.ErrorContext(ctx, "registry operation failed",
			"operation", operation,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementRejected(operation, string(code))
	}
}

// wrapMemberErr maps a missing member to notFoundCode and anything else to an
// internal error.
func wrapMemberErr(err error, notFoundCode dErrors.Code) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		if notFoundCode == dErrors.CodeNotRegistered {
			return dErrors.New(dErrors.CodeNotRegistered, "principal is not registered")
		}
		return dErrors.New(notFoundCode, "member not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "member store failure")
}
