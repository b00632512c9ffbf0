// Package push dispatches mobile push notifications. Delivery is
// best-effort by contract: callers that treat a notification as optional
// log the returned error and discard it rather than propagating it.
package push

import (
	"context"
	"log"
)

// Message is one push notification addressed to a single device token
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Dispatcher sends push notifications and returns an opaque message
// identifier from the downstream service
type Dispatcher interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NopDispatcher is used when push is not configured; it logs and reports
// success without sending anything
type NopDispatcher struct{}

func (NopDispatcher) Send(ctx context.Context, msg Message) (string, error) {
	log.Printf("Push disabled, skipping notification: title=%q token_set=%t", msg.Title, msg.Token != "")
	return "", nil
}
