package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TokenClassStore,HoldingStore,AuditPublisher
//go:generate mockgen -source=../ports/registry.go -destination=mocks/ports_mocks.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"supplyledger/internal/ledger/adapters"
	"supplyledger/internal/ledger/models"
	"supplyledger/internal/ledger/service/mocks"
	"supplyledger/internal/ledger/store/holding"
	"supplyledger/internal/ledger/store/tokenclass"
	registrymodels "supplyledger/internal/registry/models"
	registryservice "supplyledger/internal/registry/service"
	"supplyledger/internal/registry/store/member"
	"supplyledger/pkg/domain"
	dErrors "supplyledger/pkg/domain-errors"
	audit "supplyledger/pkg/platform/audit"
	auditmemory "supplyledger/pkg/platform/audit/store/memory"
	"supplyledger/pkg/platform/sentinel"
	"supplyledger/pkg/platform/tx"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// =============================================================================
// Unit tests with mocked ports: check ordering and error translation.
// =============================================================================

type LedgerServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	classes   *mocks.MockTokenClassStore
	holdings  *mocks.MockHoldingStore
	members   *mocks.MockMemberPort
	publisher *mocks.MockAuditPublisher
	service   *Service
	ctx       context.Context
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.classes = mocks.NewMockTokenClassStore(s.ctrl)
	s.holdings = mocks.NewMockHoldingStore(s.ctrl)
	s.members = mocks.NewMockMemberPort(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	svc, err := New(s.classes, s.holdings, s.members, tx.NewMemorySerializer(0),
		WithLogger(discardLogger),
		WithAuditPublisher(s.publisher),
	)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *LedgerServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LedgerServiceSuite) TestNew() {
	runner := tx.NewMemorySerializer(0)
	_, err := New(nil, s.holdings, s.members, runner)
	s.ErrorContains(err, "token class store is required")
	_, err = New(s.classes, nil, s.members, runner)
	s.ErrorContains(err, "holding store is required")
	_, err = New(s.classes, s.holdings, nil, runner)
	s.ErrorContains(err, "member port is required")
	_, err = New(s.classes, s.holdings, s.members, nil)
	s.ErrorContains(err, "transaction runner is required")
}

func (s *LedgerServiceSuite) TestMint() {
	s.Run("root class credits the creator", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), domain.Principal("0xp")).Return(domain.RoleProducer, nil)
		s.classes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tc *models.TokenClass) error {
			tc.ID = 1
			return nil
		})
		s.holdings.EXPECT().SetBalance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xp"), uint64(100)).Return(nil)
		s.holdings.EXPECT().AddOwned(gomock.Any(), domain.Principal("0xp"), domain.TokenClassID(1)).Return(nil)
		s.publisher.EXPECT().Emit(gomock.Any(), audit.TokenClassMinted(1, "0xp", "Grain", 100)).Return(audit.Event{Seq: 1}, nil)

		tc, err := s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "Grain", TotalSupply: 100})
		s.Require().NoError(err)
		s.Equal(models.KindRawMaterial, tc.Kind)
		s.True(tc.IsRoot())
	})

	s.Run("membership is checked first", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).
			Return(domain.Role(""), dErrors.New(dErrors.CodeNotRegistered, "principal is not registered"))

		_, err := s.service.Mint(s.ctx, "0xq", models.MintRequest{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotRegistered))
	})

	s.Run("consumer is rejected before the request is validated", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleConsumer, nil)

		_, err := s.service.Mint(s.ctx, "0xc", models.MintRequest{Name: "", TotalSupply: 0, ParentID: 9})
		s.True(dErrors.HasCode(err, dErrors.CodeRoleCannotMint))
	})

	s.Run("name is checked before supply and lineage", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleFactory, nil)

		_, err := s.service.Mint(s.ctx, "0xf", models.MintRequest{Name: " ", TotalSupply: 0, ParentID: 9})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidName))
	})

	s.Run("supply is checked before lineage", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleFactory, nil)

		_, err := s.service.Mint(s.ctx, "0xf", models.MintRequest{Name: "Flour", TotalSupply: 0, ParentID: 9})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidAmount))
	})

	s.Run("missing parent", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleFactory, nil)
		s.classes.EXPECT().FindByID(gomock.Any(), domain.TokenClassID(9)).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Mint(s.ctx, "0xf", models.MintRequest{Name: "Flour", TotalSupply: 5, ParentID: 9})
		s.True(dErrors.HasCode(err, dErrors.CodeParentNotFound))
	})

	s.Run("parent lookup failure is internal", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleFactory, nil)
		s.classes.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := s.service.Mint(s.ctx, "0xf", models.MintRequest{Name: "Flour", TotalSupply: 5, ParentID: 9})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("publisher failure aborts the mint", func() {
		s.members.EXPECT().RequireApproved(gomock.Any(), gomock.Any()).Return(domain.RoleProducer, nil)
		s.classes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.holdings.EXPECT().SetBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.holdings.EXPECT().AddOwned(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(audit.Event{}, errors.New("journal down"))

		_, err := s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "Grain", TotalSupply: 1})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *LedgerServiceSuite) TestMove() {
	s.Run("insufficient balance writes nothing", func() {
		s.holdings.EXPECT().Balance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xa")).Return(uint64(3), nil)

		err := s.service.Move(s.ctx, 1, "0xa", "0xb", 4)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientBalance))
	})

	s.Run("emptying a balance unindexes the sender", func() {
		gomock.InOrder(
			s.holdings.EXPECT().Balance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xa")).Return(uint64(4), nil),
			s.holdings.EXPECT().Balance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xb")).Return(uint64(0), nil),
			s.holdings.EXPECT().SetBalance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xa"), uint64(0)).Return(nil),
			s.holdings.EXPECT().SetBalance(gomock.Any(), domain.TokenClassID(1), domain.Principal("0xb"), uint64(4)).Return(nil),
			s.holdings.EXPECT().RemoveOwned(gomock.Any(), domain.Principal("0xa"), domain.TokenClassID(1)).Return(nil),
			s.holdings.EXPECT().AddOwned(gomock.Any(), domain.Principal("0xb"), domain.TokenClassID(1)).Return(nil),
		)

		s.Require().NoError(s.service.Move(s.ctx, 1, "0xa", "0xb", 4))
	})

	s.Run("zero amount", func() {
		err := s.service.Move(s.ctx, 1, "0xa", "0xb", 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidAmount))
	})
}

func (s *LedgerServiceSuite) TestGetTokenClassNotFound() {
	s.classes.EXPECT().FindByID(gomock.Any(), domain.TokenClassID(5)).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.GetTokenClass(s.ctx, 5)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// =============================================================================
// Behavior tests on the memory backend with a real registry.
// =============================================================================

const admin = domain.Principal("0xadmin")

type LedgerBehaviorSuite struct {
	suite.Suite
	registry *registryservice.Service
	holdings *holding.InMemory
	service  *Service
	journal  *auditmemory.InMemoryStore
	ctx      context.Context
}

func TestLedgerBehaviorSuite(t *testing.T) {
	suite.Run(t, new(LedgerBehaviorSuite))
}

func (s *LedgerBehaviorSuite) SetupTest() {
	s.ctx = context.Background()
	s.journal = auditmemory.NewInMemoryStore()
	runner := tx.NewMemorySerializer(time.Second)
	publisher := audit.NewPublisher(s.journal)

	reg, err := registryservice.New(member.NewInMemory(), runner, admin,
		registryservice.WithAuditPublisher(publisher),
		registryservice.WithLogger(discardLogger),
	)
	s.Require().NoError(err)
	s.registry = reg
	s.holdings = holding.NewInMemory()

	svc, err := New(tokenclass.NewInMemory(), s.holdings, adapters.NewRegistryAdapter(reg), runner,
		WithAuditPublisher(publisher),
		WithLogger(discardLogger),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *LedgerBehaviorSuite) approve(principal domain.Principal, role domain.Role) {
	_, err := s.registry.RequestRole(s.ctx, principal, role)
	s.Require().NoError(err)
	_, err = s.registry.SetStatus(s.ctx, admin, principal, registrymodels.StatusApproved)
	s.Require().NoError(err)
}

func (s *LedgerBehaviorSuite) mint(creator domain.Principal, name string, supply uint64, parent domain.TokenClassID) *models.TokenClass {
	tc, err := s.service.Mint(s.ctx, creator, models.MintRequest{Name: name, TotalSupply: supply, ParentID: parent})
	s.Require().NoError(err)
	return tc
}

func (s *LedgerBehaviorSuite) totalHeld(id domain.TokenClassID) uint64 {
	holders, err := s.service.Holders(s.ctx, id)
	s.Require().NoError(err)
	var sum uint64
	for _, h := range holders {
		sum += h.Amount
	}
	return sum
}

func (s *LedgerBehaviorSuite) TestLineageChain() {
	s.approve("0xp", domain.RoleProducer)
	s.approve("0xf", domain.RoleFactory)
	s.approve("0xr", domain.RoleRetailer)

	grain := s.mint("0xp", "Grain", 1000, domain.NoParent)
	flour := s.mint("0xf", "Flour", 500, grain.ID)
	bread := s.mint("0xr", "Bread", 200, flour.ID)

	chain, err := s.service.Lineage(s.ctx, bread.ID)
	s.Require().NoError(err)
	s.Require().Len(chain, 3)
	s.Equal([]models.Kind{models.KindFinalProduct, models.KindProcessedProduct, models.KindRawMaterial},
		[]models.Kind{chain[0].Kind, chain[1].Kind, chain[2].Kind})
	s.True(chain[2].IsRoot())

	s.Run("retailer cannot derive from raw material", func() {
		_, err := s.service.Mint(s.ctx, "0xr", models.MintRequest{Name: "Cake", TotalSupply: 1, ParentID: grain.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeParentKindMismatch))
	})
	s.Run("producer cannot name a parent", func() {
		_, err := s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "Rye", TotalSupply: 1, ParentID: grain.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeUnexpectedParent))
	})
}

func (s *LedgerBehaviorSuite) TestMintGatesOnApproval() {
	_, err := s.service.Mint(s.ctx, "0xnobody", models.MintRequest{Name: "Grain", TotalSupply: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeNotRegistered))

	_, err = s.registry.RequestRole(s.ctx, "0xp", domain.RoleProducer)
	s.Require().NoError(err)
	_, err = s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "Grain", TotalSupply: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeNotApproved))

	s.approve("0xc", domain.RoleConsumer)
	_, err = s.service.Mint(s.ctx, "0xc", models.MintRequest{Name: "Grain", TotalSupply: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeRoleCannotMint))
}

func (s *LedgerBehaviorSuite) TestFailedMintsConsumeNoID() {
	s.approve("0xp", domain.RoleProducer)

	_, err := s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "", TotalSupply: 1})
	s.Require().Error(err)
	_, err = s.service.Mint(s.ctx, "0xp", models.MintRequest{Name: "Grain", TotalSupply: 1, ParentID: 4})
	s.Require().Error(err)

	tc := s.mint("0xp", "Grain", 10, domain.NoParent)
	s.Equal(domain.TokenClassID(1), tc.ID)

	events, err := s.journal.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(audit.KindTokenClassMinted, events[len(events)-1].Kind)
}

func (s *LedgerBehaviorSuite) TestMoveConservesSupply() {
	s.approve("0xp", domain.RoleProducer)
	grain := s.mint("0xp", "Grain", 100, domain.NoParent)

	s.Require().NoError(s.service.Move(s.ctx, grain.ID, "0xp", "0xf", 40))
	s.Equal(uint64(100), s.totalHeld(grain.ID))

	err := s.service.Move(s.ctx, grain.ID, "0xp", "0xf", 61)
	s.True(dErrors.HasCode(err, dErrors.CodeInsufficientBalance))
	s.Equal(uint64(100), s.totalHeld(grain.ID))

	s.Require().NoError(s.service.Move(s.ctx, grain.ID, "0xp", "0xf", 60))
	bal, err := s.service.GetBalance(s.ctx, grain.ID, "0xp")
	s.Require().NoError(err)
	s.Zero(bal)

	owned, err := s.service.OwnedClasses(s.ctx, "0xp")
	s.Require().NoError(err)
	s.Empty(owned)
	owned, err = s.service.OwnedClasses(s.ctx, "0xf")
	s.Require().NoError(err)
	s.Equal([]domain.TokenClassID{grain.ID}, owned)
}

func (s *LedgerBehaviorSuite) TestGetBalance() {
	s.approve("0xp", domain.RoleProducer)
	grain := s.mint("0xp", "Grain", 7, domain.NoParent)

	bal, err := s.service.GetBalance(s.ctx, grain.ID, "0xstranger")
	s.Require().NoError(err)
	s.Zero(bal)

	_, err = s.service.GetBalance(s.ctx, 99, "0xp")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LedgerBehaviorSuite) TestRebuildOwnedIndex() {
	s.approve("0xp", domain.RoleProducer)
	a := s.mint("0xp", "Grain", 5, domain.NoParent)
	b := s.mint("0xp", "Rye", 5, domain.NoParent)

	drift, err := s.service.RebuildOwnedIndex(s.ctx, "0xp")
	s.Require().NoError(err)
	s.True(drift.IsEmpty())

	s.Require().NoError(s.holdings.RemoveOwned(s.ctx, "0xp", a.ID))
	s.Require().NoError(s.holdings.AddOwned(s.ctx, "0xp", 42))

	drift, err = s.service.RebuildOwnedIndex(s.ctx, "0xp")
	s.Require().NoError(err)
	s.Equal([]domain.TokenClassID{a.ID}, drift.Missing)
	s.Equal([]domain.TokenClassID{42}, drift.Stale)

	owned, err := s.service.OwnedClasses(s.ctx, "0xp")
	s.Require().NoError(err)
	s.Equal([]domain.TokenClassID{a.ID, b.ID}, owned)
}

func (s *LedgerBehaviorSuite) TestLoosePolicy() {
	runner := tx.NewMemorySerializer(time.Second)
	reg, err := registryservice.New(member.NewInMemory(), runner, admin, registryservice.WithLogger(discardLogger))
	s.Require().NoError(err)
	s.registry = reg
	svc, err := New(tokenclass.NewInMemory(), holding.NewInMemory(), adapters.NewRegistryAdapter(reg), runner,
		WithLineagePolicy(models.LooseLineage{}),
		WithLogger(discardLogger),
	)
	s.Require().NoError(err)
	s.service = svc

	s.approve("0xp", domain.RoleProducer)
	s.approve("0xr", domain.RoleRetailer)
	grain := s.mint("0xp", "Grain", 10, domain.NoParent)

	bread := s.mint("0xr", "Bread", 3, grain.ID)
	s.Equal(models.KindFinalProduct, bread.Kind)

	_, err = s.service.Mint(s.ctx, "0xr", models.MintRequest{Name: "Cake", TotalSupply: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeParentNotFound))
}
