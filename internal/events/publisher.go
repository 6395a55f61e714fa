// Package events publishes search-performed events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/logging"

	"github.com/segmentio/kafka-go"
)

// SearchEvent is emitted once per flight search.
type SearchEvent struct {
	OriginText      string    `json:"origin_text"`
	DestinationText string    `json:"destination_text"`
	OriginCode      string    `json:"origin_code"`
	DestinationCode string    `json:"destination_code"`
	Date            string    `json:"date"`
	Passengers      int       `json:"passengers"`
	Cabin           string    `json:"cabin"`
	LowestFare      int       `json:"lowest_fare"`
	IsRealTime      bool      `json:"is_real_time"`
	SearchedAt      time.Time `json:"searched_at"`
}

// Key partitions events by route so one route's events stay ordered.
func (e SearchEvent) Key() string {
	return strings.ToUpper(e.OriginCode) + "-" + strings.ToUpper(e.DestinationCode)
}

// Publisher sends search events somewhere. Failures are reported, never retried.
type Publisher interface {
	PublishSearch(ctx context.Context, event SearchEvent) error
	Close() error
}

// messageWriter is the part of kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON search events to a single topic.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	closed bool
	mu     sync.RWMutex
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NopPublisher{}
)

var ErrPublisherClosed = errors.New("publisher is closed")

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.SearchTopic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SearchTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logging.Warn("kafka writer error", "detail", fmt.Sprintf(msg, args...))
		}),
	}
	return newKafkaPublisher(writer, cfg.SearchTopic), nil
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) PublishSearch(ctx context.Context, event SearchEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key()),
		Value: data,
		Time:  event.SearchedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("search.performed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishSearch(context.Context, SearchEvent) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
