package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// FCMDispatcher sends notifications through the FCM HTTP v1 API using a
// service-account token source
type FCMDispatcher struct {
	client  *http.Client
	baseURL string
	project string
}

// NewFCMDispatcher creates a dispatcher from a service-account
// credentials file. The returned client refreshes its OAuth token
// automatically.
func NewFCMDispatcher(ctx context.Context, projectID, credentialsFile string) (*FCMDispatcher, error) {
	credJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read FCM credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(credJSON, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FCM credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, conf.TokenSource(ctx))
	client.Timeout = 10 * time.Second

	return &FCMDispatcher{
		client:  client,
		baseURL: "https://fcm.googleapis.com",
		project: projectID,
	}, nil
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmSendRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmSendResponse struct {
	Name string `json:"name"`
}

// Send dispatches one message and returns the FCM message name
func (d *FCMDispatcher) Send(ctx context.Context, msg Message) (string, error) {
	payload, err := json.Marshal(fcmSendRequest{
		Message: fcmMessage{
			Token:        msg.Token,
			Notification: fcmNotification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode FCM message: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", d.baseURL, d.project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build FCM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read FCM response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("FCM send failed: status=%d body=%s", resp.StatusCode, body)
	}

	var result fcmSendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode FCM response: %w", err)
	}
	return result.Name, nil
}
