//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"supplyledger/internal/platform/config"
	audit "supplyledger/pkg/platform/audit"
	"supplyledger/pkg/platform/audit/outbox"
	"supplyledger/pkg/platform/audit/store/memory"
	"supplyledger/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	broker *containers.RedpandaContainer
	ctx    context.Context
}

func TestProducerSuite(t *testing.T) {
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T())
	s.ctx = context.Background()
}

func (s *ProducerSuite) newProducer(topic string) *Producer {
	p, err := NewProducer(config.KafkaConfig{Brokers: s.broker.Brokers, Topic: topic})
	s.Require().NoError(err)
	s.T().Cleanup(p.Close)
	s.Require().NoError(p.EnsureTopic(s.ctx, 1, 1))
	s.Require().NoError(p.EnsureTopic(s.ctx, 1, 1), "existing topic is not an error")
	return p
}

func (s *ProducerSuite) consume(topic string, n int) []audit.Event {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var events []audit.Event
	for len(events) < n {
		fetches := client.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for %d records", n)
		fetches.EachRecord(func(r *kgo.Record) {
			var e audit.Event
			s.Require().NoError(json.Unmarshal(r.Value, &e))
			s.Equal(e.Key(), string(r.Key))
			events = append(events, e)
		})
	}
	return events
}

func (s *ProducerSuite) TestPublishKeysBySubject() {
	topic := "ledger.notifications.publish"
	p := s.newProducer(topic)
	s.Require().NoError(p.Ping(s.ctx))

	batch := []audit.Event{
		audit.MemberRequested("0xa", "producer"),
		audit.TransferRequested(1, "0xa", "0xb", 1, 5),
	}
	batch[0].Seq, batch[1].Seq = 1, 2
	s.Require().NoError(p.Publish(s.ctx, batch))

	got := s.consume(topic, 2)
	s.Equal(uint64(1), got[0].Seq)
	s.Equal(audit.KindTransferRequested, got[1].Kind)
}

func (s *ProducerSuite) TestRelayDrainsOutboxInOrder() {
	topic := "ledger.notifications.relay"
	p := s.newProducer(topic)

	journal := memory.NewInMemoryStore()
	publisher := audit.NewPublisher(journal)
	for _, e := range []audit.Event{
		audit.MemberRequested("0xa", "producer"),
		audit.MemberStatusChanged("0xa", "approved"),
		audit.TokenClassMinted(1, "0xa", "Grain", 100),
	} {
		_, err := publisher.Emit(s.ctx, e)
		s.Require().NoError(err)
	}

	relay := outbox.NewRelay(journal, p, outbox.WithBatchSize(2))
	delivered, err := relay.Drain(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, delivered)

	pending, err := journal.ListUnpublished(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(pending)

	got := s.consume(topic, 3)
	for i, e := range got {
		s.Equal(uint64(i+1), e.Seq)
	}
}
