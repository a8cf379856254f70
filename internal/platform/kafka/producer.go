// Package kafka publishes journal entries to the notifications topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"supplyledger/internal/platform/config"
	audit "supplyledger/pkg/platform/audit"
)

// Producer publishes notifications keyed by subject principal so every event
// about one principal lands on the same partition in journal order.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the brokers. Records are produced idempotently with
// all-ISR acks.
func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Producer{client: client, topic: cfg.Topic}, nil
}

// EnsureTopic creates the notifications topic when it does not exist.
func (p *Producer) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(p.client)
	resp, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish produces the batch synchronously and returns the first failure.
func (p *Producer) Publish(ctx context.Context, events []audit.Event) error {
	records := make([]*kgo.Record, 0, len(events))
	for _, e := range events {
		rec, err := toRecord(e)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce notifications: %w", err)
	}
	return nil
}

func (p *Producer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *Producer) Close() {
	p.client.Close()
}

func toRecord(e audit.Event) (*kgo.Record, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal notification %d: %w", e.Seq, err)
	}
	return &kgo.Record{
		Key:   []byte(e.Key()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(e.Kind)},
			{Key: "seq", Value: []byte(strconv.FormatUint(e.Seq, 10))},
		},
	}, nil
}
