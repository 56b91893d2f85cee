package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

// SignInEvent represents a successful sign-in
type SignInEvent struct {
	Fid      int64     `json:"fid"`
	Address  string    `json:"address"`
	Domain   string    `json:"domain"`
	SignedIn time.Time `json:"signed_in"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "heimdall.signin",
	}
}

// PublishSignIn publishes a sign-in event
func (p *WatermillPublisher) PublishSignIn(ctx context.Context, identity core.Identity, domain string) error {
	event := SignInEvent{
		Fid:      identity.Fid,
		Address:  identity.Address,
		Domain:   domain,
		SignedIn: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
