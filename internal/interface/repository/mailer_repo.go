package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
)

// HTTPMailerRepository dispatches email through the external mail relay.
// The relay is consumed fire-and-forget: a failure here is reported to the
// caller and never rolls back case or location writes.
type HTTPMailerRepository struct {
	logger   logger.Logger
	endpoint string
	client   *http.Client
}

// NewHTTPMailerRepository creates a new mail relay client
func NewHTTPMailerRepository(endpoint string, logger logger.Logger) repository.MailerRepository {
	return &HTTPMailerRepository{
		logger:   logger,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one message to the relay and returns the relay's message id
func (r *HTTPMailerRepository) Send(ctx context.Context, msg *entity.EmailMessage) (string, error) {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/send-email", r.endpoint)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach mail relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("mail relay returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode relay response: %w", err)
	}

	r.logger.Info("Notification dispatched",
		"to", msg.To, "subject", msg.Subject, "messageId", response.MessageID)
	return response.MessageID, nil
}
