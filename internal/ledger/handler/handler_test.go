package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplyledger/internal/ledger/adapters"
	"supplyledger/internal/ledger/service"
	"supplyledger/internal/ledger/store/holding"
	"supplyledger/internal/ledger/store/tokenclass"
	registrymodels "supplyledger/internal/registry/models"
	registryservice "supplyledger/internal/registry/service"
	"supplyledger/internal/registry/store/member"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/tx"
	"supplyledger/pkg/testutil"
)

const admin = "0xadmin"

func newLedgerRouter(t *testing.T, approved map[domain.Principal]domain.Role) http.Handler {
	t.Helper()
	ctx := context.Background()
	runner := tx.NewMemorySerializer(0)
	reg, err := registryservice.New(member.NewInMemory(), runner, admin)
	require.NoError(t, err)
	for p, role := range approved {
		_, err := reg.RequestRole(ctx, p, role)
		require.NoError(t, err)
		_, err = reg.SetStatus(ctx, admin, p, registrymodels.StatusApproved)
		require.NoError(t, err)
	}

	svc, err := service.New(tokenclass.NewInMemory(), holding.NewInMemory(), adapters.NewRegistryAdapter(reg), runner)
	require.NoError(t, err)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestMintAndReadViaHandlers(t *testing.T) {
	router := newLedgerRouter(t, map[domain.Principal]domain.Role{
		"0xp": domain.RoleProducer,
		"0xf": domain.RoleFactory,
	})

	testutil.Given(t, "a producer minting a root class", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodPost, "/token-classes",
			MintRequest{Name: "Grain", TotalSupply: 1000, Features: []byte("organic")}), "0xp")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[TokenClassResponse](t, rr)
		assert.EqualValues(t, 1, resp.ID)
		assert.Equal(t, "raw_material", string(resp.Kind))
		assert.Equal(t, []byte("organic"), resp.Features)
	})

	testutil.When(t, "a factory derives from it", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodPost, "/token-classes",
			MintRequest{Name: "Flour", TotalSupply: 400, ParentID: 1}), "0xf")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
	})

	testutil.Then(t, "lineage, balances and holdings are readable", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/token-classes/2/lineage"))
		testutil.AssertStatusOK(t, rr)
		lineage := testutil.UnmarshalResponse[LineageResponse](t, rr)
		require.Len(t, lineage.Chain, 2)
		assert.EqualValues(t, 1, lineage.Chain[1].ID)

		rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/token-classes/1/balances/0xp"))
		testutil.AssertStatusOK(t, rr)
		bal := testutil.UnmarshalResponse[BalanceResponse](t, rr)
		assert.EqualValues(t, 1000, bal.Amount)

		rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/holders/0xf/token-classes"))
		testutil.AssertStatusOK(t, rr)
		owned := testutil.UnmarshalResponse[OwnedClassesResponse](t, rr)
		assert.Equal(t, []domain.TokenClassID{2}, owned.TokenClasses)
	})
}

func TestMintErrors(t *testing.T) {
	router := newLedgerRouter(t, map[domain.Principal]domain.Role{
		"0xp": domain.RoleProducer,
		"0xc": domain.RoleConsumer,
	})

	t.Run("unregistered creator", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodPost, "/token-classes", MintRequest{Name: "Grain", TotalSupply: 1}), "0xnobody")
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusUnprocessableEntity, "not_registered")
	})

	t.Run("consumer cannot mint", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodPost, "/token-classes", MintRequest{Name: "Grain", TotalSupply: 1}), "0xc")
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusUnprocessableEntity, "role_cannot_mint")
	})

	t.Run("zero supply", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodPost, "/token-classes", MintRequest{Name: "Grain"}), "0xp")
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusBadRequest, "invalid_amount")
	})

	t.Run("negative supply is malformed", func(t *testing.T) {
		req := testutil.WithPrincipal(testutil.NewRequestWithBody(t, http.MethodPost, "/token-classes", `{"name":"Grain","total_supply":-1}`), "0xp")
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusBadRequest, "bad_request")
	})

	t.Run("bad class id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/token-classes/zero"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	for _, path := range []string{"/token-classes/9", "/token-classes/0", "/token-classes/0/lineage"} {
		t.Run("unknown class "+path, func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, path))
			testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
		})
	}
}
