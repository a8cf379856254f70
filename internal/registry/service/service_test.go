package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks MemberStore,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"supplyledger/internal/registry/models"
	"supplyledger/internal/registry/service/mocks"
	"supplyledger/internal/registry/store/member"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	auditmemory "supplyledger/pkg/platform/audit/store/memory"
	"supplyledger/pkg/platform/sentinel"
	"supplyledger/pkg/platform/tx"
)

const admin = domain.Principal("0xadmin")

// =============================================================================
// Unit tests with mocked ports: error translation and notification emission.
// =============================================================================

type RegistryServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *mocks.MockMemberStore
	publisher *mocks.MockAuditPublisher
	service   *Service
	ctx       context.Context
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockMemberStore(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	svc, err := New(s.store, tx.NewMemorySerializer(0), admin,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.publisher),
	)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *RegistryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RegistryServiceSuite) TestNew() {
	s.Run("nil store", func() {
		_, err := New(nil, tx.NewMemorySerializer(0), admin)
		s.ErrorContains(err, "member store is required")
	})
	s.Run("nil runner", func() {
		_, err := New(s.store, nil, admin)
		s.ErrorContains(err, "transaction runner is required")
	})
	s.Run("empty admin", func() {
		_, err := New(s.store, tx.NewMemorySerializer(0), "")
		s.ErrorContains(err, "admin principal is required")
	})
}

func (s *RegistryServiceSuite) TestRequestRole() {
	s.Run("creates pending member and emits notification", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), domain.Principal("0xp")).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *models.Member) error {
			m.ID = 1
			return nil
		})
		s.publisher.EXPECT().Emit(gomock.Any(), audit.MemberRequested("0xp", domain.RoleProducer)).Return(audit.Event{Seq: 1}, nil)

		m, err := s.service.RequestRole(s.ctx, "0xp", domain.RoleProducer)
		s.Require().NoError(err)
		s.Equal(domain.MemberID(1), m.ID)
		s.Equal(models.StatusPending, m.Status)
	})

	s.Run("invalid role touches nothing", func() {
		_, err := s.service.RequestRole(s.ctx, "0xp", domain.Role("admin"))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRole))
	})

	s.Run("existing record", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), domain.Principal("0xp")).Return(&models.Member{Status: models.StatusRejected}, nil)

		_, err := s.service.RequestRole(s.ctx, "0xp", domain.RoleFactory)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRegistered))
	})

	s.Run("store failure is internal", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := s.service.RequestRole(s.ctx, "0xq", domain.RoleFactory)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("publisher failure aborts the operation", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(audit.Event{}, errors.New("journal down"))

		_, err := s.service.RequestRole(s.ctx, "0xr", domain.RoleRetailer)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *RegistryServiceSuite) TestSetStatus() {
	s.Run("non-admin is rejected before any lookup", func() {
		_, err := s.service.SetStatus(s.ctx, "0xp", "0xp", models.StatusApproved)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown member", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), domain.Principal("0xghost")).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.SetStatus(s.ctx, admin, "0xghost", models.StatusApproved)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("pending is not a target", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), domain.Principal("0xp")).Return(&models.Member{Principal: "0xp", Status: models.StatusApproved}, nil)

		_, err := s.service.SetStatus(s.ctx, admin, "0xp", models.StatusPending)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("approves and emits", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), domain.Principal("0xp")).Return(&models.Member{ID: 1, Principal: "0xp", Status: models.StatusPending}, nil)
		s.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		s.publisher.EXPECT().Emit(gomock.Any(), audit.MemberStatusChanged("0xp", "approved")).Return(audit.Event{Seq: 2}, nil)

		m, err := s.service.SetStatus(s.ctx, admin, "0xp", models.StatusApproved)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, m.Status)
	})
}

func (s *RegistryServiceSuite) TestRequireApproved() {
	s.Run("unregistered", func() {
		s.store.EXPECT().FindByPrincipal(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.RequireApproved(s.ctx, "0xnobody")
		s.True(dErrors.HasCode(err, dErrors.CodeNotRegistered))
	})

	for _, st := range []models.Status{models.StatusPending, models.StatusRejected, models.StatusCanceled} {
		s.Run("status "+st.String(), func() {
			s.store.EXPECT().FindByPrincipal(gomock.Any(), gomock.Any()).Return(&models.Member{Status: st}, nil)
			_, err := s.service.RequireApproved(s.ctx, "0xp")
			s.True(dErrors.HasCode(err, dErrors.CodeNotApproved))
		})
	}
}

func (s *RegistryServiceSuite) TestIsAdmin() {
	s.True(s.service.IsAdmin(admin))
	s.False(s.service.IsAdmin("0xADMIN"))
	s.False(s.service.IsAdmin(""))
}

// =============================================================================
// Behavioral tests against the in-memory store.
// =============================================================================

type RegistryBehaviorSuite struct {
	suite.Suite
	service *Service
	journal *auditmemory.InMemoryStore
	ctx     context.Context
}

func TestRegistryBehaviorSuite(t *testing.T) {
	suite.Run(t, new(RegistryBehaviorSuite))
}

func (s *RegistryBehaviorSuite) SetupTest() {
	s.journal = auditmemory.NewInMemoryStore()
	svc, err := New(member.NewInMemory(), tx.NewMemorySerializer(time.Second), admin,
		WithAuditPublisher(audit.NewPublisher(s.journal)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *RegistryBehaviorSuite) journalKinds() []audit.Kind {
	events, err := s.journal.ListAll(s.ctx)
	s.Require().NoError(err)
	kinds := make([]audit.Kind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (s *RegistryBehaviorSuite) TestRegistrationExclusivity() {
	_, err := s.service.RequestRole(s.ctx, "0xp", domain.RoleProducer)
	s.Require().NoError(err)

	for _, st := range []models.Status{models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusCanceled} {
		if st != models.StatusPending {
			_, err := s.service.SetStatus(s.ctx, admin, "0xp", st)
			s.Require().NoError(err)
		}
		for _, role := range domain.Roles() {
			_, err := s.service.RequestRole(s.ctx, "0xp", role)
			s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRegistered), "status %s role %s", st, role)
		}
	}

	m, err := s.service.Lookup(s.ctx, "0xp")
	s.Require().NoError(err)
	s.Equal(domain.RoleProducer, m.Role)
	s.Equal(domain.MemberID(1), m.ID)
}

func (s *RegistryBehaviorSuite) TestAdminExclusivity() {
	_, err := s.service.RequestRole(s.ctx, "0xp", domain.RoleProducer)
	s.Require().NoError(err)
	_, err = s.service.RequestRole(s.ctx, "0xf", domain.RoleFactory)
	s.Require().NoError(err)

	for _, caller := range []domain.Principal{"0xp", "0xf", "0xstranger"} {
		_, err := s.service.SetStatus(s.ctx, caller, "0xp", models.StatusApproved)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	}

	m, err := s.service.Lookup(s.ctx, "0xp")
	s.Require().NoError(err)
	s.Equal(models.StatusPending, m.Status)
	s.Equal([]audit.Kind{audit.KindMemberRequested, audit.KindMemberRequested}, s.journalKinds())
}

func (s *RegistryBehaviorSuite) TestStatusTransitions() {
	_, err := s.service.RequestRole(s.ctx, "0xp", domain.RoleProducer)
	s.Require().NoError(err)

	_, err = s.service.SetStatus(s.ctx, admin, "0xp", models.StatusApproved)
	s.Require().NoError(err)
	_, err = s.service.RequireApproved(s.ctx, "0xp")
	s.Require().NoError(err)

	_, err = s.service.SetStatus(s.ctx, admin, "0xp", models.StatusCanceled)
	s.Require().NoError(err)
	_, err = s.service.RequireApproved(s.ctx, "0xp")
	s.True(dErrors.HasCode(err, dErrors.CodeNotApproved))

	_, err = s.service.SetStatus(s.ctx, admin, "0xp", models.StatusPending)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))

	s.Equal([]audit.Kind{
		audit.KindMemberRequested,
		audit.KindMemberStatusChanged,
		audit.KindMemberStatusChanged,
	}, s.journalKinds())
}

func (s *RegistryBehaviorSuite) TestListMembers() {
	for _, p := range []domain.Principal{"0xa", "0xb", "0xc"} {
		_, err := s.service.RequestRole(s.ctx, p, domain.RoleRetailer)
		s.Require().NoError(err)
	}
	_, err := s.service.SetStatus(s.ctx, admin, "0xb", models.StatusApproved)
	s.Require().NoError(err)

	_, err = s.service.ListMembers(s.ctx, "0xa", "")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	pending, err := s.service.ListMembers(s.ctx, admin, models.StatusPending)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(domain.Principal("0xa"), pending[0].Principal)
	s.Equal(domain.Principal("0xc"), pending[1].Principal)
}
