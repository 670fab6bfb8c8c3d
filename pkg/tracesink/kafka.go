// Package tracesink ships completed run records to Kafka for offline
// analysis of routing quality and failure rates.
package tracesink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/coverdesk/coverdesk/agent/agents/orchestrator"
)

type Config struct {
	Brokers []string      `envconfig:"BROKERS" split_words:"true"`
	Topic   string        `envconfig:"TOPIC" split_words:"true" default:"coverdesk.run-traces"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Enabled reports whether trace shipping is configured at all.
func (c Config) Enabled() bool {
	for _, b := range c.Brokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

// KafkaSink publishes run records as JSON messages keyed by route trace.
type KafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaSink(cfg Config) (*KafkaSink, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("kafka sink requires at least one broker")
	}
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: cfg.Timeout,
		},
	}, nil
}

func (s *KafkaSink) Publish(ctx context.Context, record orchestrator.RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	steps := make([]string, 0, len(record.Trace))
	for _, step := range record.Trace {
		steps = append(steps, string(step))
	}
	msg := kafka.Message{
		Key:   []byte(strings.Join(steps, ">")),
		Value: data,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}

	log.Debug().Str("topic", s.writer.Topic).Msg("published run trace")
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
