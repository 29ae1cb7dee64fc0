package pkg

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt/events"
	"github.com/nats-io/nats.go"
)

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	return p.conn.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

type NATSSubscriber struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

func NewNATSSubscriber(url string) (*NATSSubscriber, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSubscriber{conn: conn}, nil
}

func (s *NATSSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	sub, err := s.conn.Subscribe(topic, func(msg *nats.Msg) {
		// Handler errors are the handler's to report; core NATS has no
		// redelivery, so there is nothing useful to do with them here.
		_ = handler(ctx, msg.Data)
	})
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *NATSSubscriber) Close() error {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.conn.Close()
	return nil
}
