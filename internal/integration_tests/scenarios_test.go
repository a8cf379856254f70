package integration_tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"supplyledger/pkg/domain"
	"supplyledger/pkg/testutil"
)

func TestLedgerScenariosInMemory(t *testing.T) {
	suite.Run(t, new(LedgerScenarioSuite))
}

func (s *LedgerScenarioSuite) TestSupplyChainWalkthrough() {
	s.enrollSupplyChain()

	s.Run("producer mints grain", func() {
		rr := s.do(producer, http.MethodPost, "/token-classes", map[string]any{
			"name": "Grain", "total_supply": 100,
		})
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
		tc := testutil.UnmarshalResponse[tokenClassResponse](s.T(), rr)
		s.Equal(uint64(1), tc.ID)
		s.Equal("raw_material", tc.Kind)
		s.Equal(uint64(100), s.balance("1", producer))
	})

	s.Run("initiate leaves balances untouched", func() {
		rr := s.do(producer, http.MethodPost, "/transfers", map[string]any{
			"to": factory, "token_id": 1, "amount": 60,
		})
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
		tr := testutil.UnmarshalResponse[transferResponse](s.T(), rr)
		s.Equal(uint64(1), tr.ID)
		s.Equal("pending", tr.Status)
		s.Equal(uint64(100), s.balance("1", producer))
		s.Equal(uint64(0), s.balance("1", factory))
	})

	s.Run("factory accepts and the units move", func() {
		rr := s.do(factory, http.MethodPost, "/transfers/1/accept", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		s.Equal("accepted", testutil.UnmarshalResponse[transferResponse](s.T(), rr).Status)

		s.Equal(uint64(40), s.balance("1", producer))
		s.Equal(uint64(60), s.balance("1", factory))

		rr = s.do(factory, http.MethodGet, "/holders/"+factory+"/token-classes", nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.Contains(testutil.UnmarshalResponse[ownedResponse](s.T(), rr).TokenClasses, uint64(1))
	})

	s.Run("factory mints flour from grain", func() {
		rr := s.do(factory, http.MethodPost, "/token-classes", map[string]any{
			"name": "Flour", "total_supply": 50, "parent_id": 1,
		})
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
		tc := testutil.UnmarshalResponse[tokenClassResponse](s.T(), rr)
		s.Equal(uint64(2), tc.ID)
		s.Equal("processed_product", tc.Kind)
		s.Equal(uint64(1), tc.ParentID)
	})

	s.Run("factory cannot send upstream", func() {
		rr := s.do(factory, http.MethodPost, "/transfers", map[string]any{
			"to": producer, "token_id": 2, "amount": 10,
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_role_flow")

		rr = s.do(factory, http.MethodGet, "/holders/"+factory+"/transfers", nil)
		s.Require().Equal(http.StatusOK, rr.Code)
		s.Equal([]uint64{1}, testutil.UnmarshalResponse[transfersResponse](s.T(), rr).Transfers)
	})

	s.Run("consumer cannot send to anyone", func() {
		for _, to := range []string{producer, factory, retailer, "0xunknown"} {
			rr := s.do(consumer, http.MethodPost, "/transfers", map[string]any{
				"to": to, "token_id": 1, "amount": 1,
			})
			testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_role_flow")
		}
		rr := s.do(consumer, http.MethodPost, "/transfers", map[string]any{
			"to": retailer, "token_id": 0, "amount": 0,
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_role_flow")
	})

	s.Run("lineage walks back to the root", func() {
		rr := s.do(retailer, http.MethodGet, "/token-classes/2/lineage", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		body := testutil.UnmarshalResponse[lineageResponse](s.T(), rr)
		s.Require().Len(body.Chain, 2)
		s.Equal(uint64(2), body.Chain[0].ID)
		s.Equal(uint64(1), body.Chain[1].ID)
	})

	s.Run("notifications record every success in order", func() {
		rr := s.do(consumer, http.MethodGet, "/notifications?after=8", nil)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		feed := testutil.UnmarshalResponse[notificationsResponse](s.T(), rr)
		kinds := make([]string, 0, len(feed.Events))
		for _, e := range feed.Events {
			kinds = append(kinds, e.Kind)
		}
		s.Equal([]string{"token_class_minted", "transfer_requested", "transfer_accepted", "token_class_minted"}, kinds)
		s.Equal(uint64(12), feed.Next)
	})
}

func (s *LedgerScenarioSuite) TestGatekeeping() {
	s.enroll(producer, domain.RoleProducer)

	s.Run("unapproved members cannot mint", func() {
		rr := s.do(factory, http.MethodPost, "/members", map[string]string{"role": "factory"})
		s.Require().Equal(http.StatusCreated, rr.Code)
		rr = s.do(factory, http.MethodPost, "/token-classes", map[string]any{"name": "Flour", "total_supply": 1, "parent_id": 1})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "not_approved")
	})

	s.Run("only the admin sets status", func() {
		rr := s.do(producer, http.MethodPut, "/members/"+factory+"/status", map[string]string{"status": "approved"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "unauthorized")
	})

	s.Run("registration is exclusive", func() {
		rr := s.do(producer, http.MethodPost, "/members", map[string]string{"role": "retailer"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_registered")
	})

	s.Run("producers mint roots only", func() {
		rr := s.do(producer, http.MethodPost, "/token-classes", map[string]any{"name": "Grain", "total_supply": 10})
		s.Require().Equal(http.StatusCreated, rr.Code)
		rr = s.do(producer, http.MethodPost, "/token-classes", map[string]any{"name": "Grain", "total_supply": 10, "parent_id": 1})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "unexpected_parent")

		rr = s.do(producer, http.MethodGet, "/token-classes/2", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("empty role is an invalid role", func() {
		rr := s.do(retailer, http.MethodPost, "/members", map[string]string{"role": ""})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_role")
	})

	s.Run("id zero is never assigned", func() {
		for _, path := range []string{"/token-classes/0", "/token-classes/0/lineage", "/transfers/0"} {
			rr := s.do(producer, http.MethodGet, path, nil)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		}
		for _, path := range []string{"/transfers/0/accept", "/transfers/0/reject"} {
			rr := s.do(producer, http.MethodPost, path, nil)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		}
	})
}
