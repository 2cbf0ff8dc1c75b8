// Package pubsub delivers network-change and route events to web
// subscribers over Server-Sent Events.
package pubsub

import (
	"context"
	"encoding/json"
)

// Topic names used by the server.
const (
	TopicNetwork = "network" // network version changes (weight edits, resets)
	TopicRoutes  = "routes"  // computed route summaries
)

// Event is one pub/sub event as delivered to subscribers.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"` // e.g. "weight_updated", "network_reset", "route_computed"
	Data    json.RawMessage `json:"data"`
	Ordinal int             `json:"ordinal"` // per-topic delivery counter, for ordering
}

// Subscription is a client subscription to a topic.
type Subscription interface {
	// Topic returns the subscription topic.
	Topic() string

	// Events returns a channel for receiving events.
	Events() <-chan Event

	// Close closes the subscription.
	Close() error
}

// Publisher manages subscriptions and event publishing.
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation closes the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic.
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions.
	Close() error
}

// NetworkChange is the payload on TopicNetwork. Version is the store
// version after the change; the display layer uses it to re-request the
// derived view so it never renders a stale one.
type NetworkChange struct {
	Version uint64  `json:"version"`
	A       string  `json:"a,omitempty"`
	B       string  `json:"b,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
}

// RouteComputed is the payload on TopicRoutes.
type RouteComputed struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	TotalWeight float64 `json:"totalWeight"`
	Stops       int     `json:"stops"`
	Found       bool    `json:"found"`
}
