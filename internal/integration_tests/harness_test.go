package integration_tests

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/stretchr/testify/suite"

	"supplyledger/internal/app"
	jwttoken "supplyledger/internal/jwt_token"
	"supplyledger/internal/platform/config"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/testutil"
)

const (
	admin    = "0xadmin"
	producer = "0xproducer"
	factory  = "0xfactory"
	retailer = "0xretailer"
	consumer = "0xconsumer"
)

// LedgerScenarioSuite drives the fully wired HTTP API. Embedders supply the
// backend through configure.
type LedgerScenarioSuite struct {
	suite.Suite
	configure func(cfg *config.Server)
	reset     func(ctx context.Context) error

	app *app.App
	jwt *jwttoken.JWTService
}

func (s *LedgerScenarioSuite) SetupTest() {
	ctx := context.Background()
	if s.reset != nil {
		s.Require().NoError(s.reset(ctx))
	}
	cfg := config.Server{
		AdminPrincipal: admin,
		JWTSigningKey:  "scenario-key",
		JWTIssuer:      "supplyledger",
		JWTAudience:    "supplyledger",
		Store:          config.StoreMemory,
		TxTimeout:      5 * time.Second,
		LineagePolicy:  config.LineageStrict,
	}
	if s.configure != nil {
		s.configure(&cfg)
	}

	a, err := app.New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.app = a
	s.jwt = jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
}

func (s *LedgerScenarioSuite) TearDownTest() {
	if s.app != nil {
		s.Require().NoError(s.app.Close())
	}
}

func (s *LedgerScenarioSuite) do(principal, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(s.T(), method, "/v1"+path, body)
	} else {
		req = testutil.NewRequest(s.T(), method, "/v1"+path)
	}
	token, err := s.jwt.GenerateAccessToken(domain.Principal(principal), time.Minute)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.DoRequest(s.app.Handler(), req)
}

// enroll registers principal with role and has the admin approve it.
func (s *LedgerScenarioSuite) enroll(principal string, role domain.Role) {
	rr := s.do(principal, http.MethodPost, "/members", map[string]string{"role": role.String()})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	rr = s.do(admin, http.MethodPut, "/members/"+principal+"/status", map[string]string{"status": "approved"})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
}

func (s *LedgerScenarioSuite) enrollSupplyChain() {
	s.enroll(producer, domain.RoleProducer)
	s.enroll(factory, domain.RoleFactory)
	s.enroll(retailer, domain.RoleRetailer)
	s.enroll(consumer, domain.RoleConsumer)
}

func (s *LedgerScenarioSuite) balance(id, principal string) uint64 {
	rr := s.do(principal, http.MethodGet, "/token-classes/"+id+"/balances/"+principal, nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[balanceResponse](s.T(), rr).Amount
}

type balanceResponse struct {
	Amount uint64 `json:"amount"`
}

type tokenClassResponse struct {
	ID       uint64 `json:"id"`
	Kind     string `json:"kind"`
	ParentID uint64 `json:"parent_id"`
}

type lineageResponse struct {
	Chain []tokenClassResponse `json:"chain"`
}

type transferResponse struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
}

type ownedResponse struct {
	TokenClasses []uint64 `json:"token_classes"`
}

type transfersResponse struct {
	Transfers []uint64 `json:"transfers"`
}

type notificationsResponse struct {
	Events []struct {
		Seq  uint64 `json:"seq"`
		Kind string `json:"kind"`
	} `json:"events"`
	Next uint64 `json:"next"`
}
