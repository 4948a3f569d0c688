package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
)

// KatagoRepository talks to an HTTP bridge in front of the KataGo analysis
// engine. The bridge takes one query and answers with one response per analyzed turn.
type KatagoRepository struct {
	log       *zap.SugaredLogger
	kataGoURL string
	client    *http.Client
}

func NewKatagoRepository(kataGoURL string, log *zap.SugaredLogger) *KatagoRepository {
	return &KatagoRepository{
		log:       log,
		kataGoURL: kataGoURL,
		client:    &http.Client{Timeout: 2 * time.Minute},
	}
}

func (k *KatagoRepository) Analyze(ctx context.Context, query domain.KatagoQuery) ([]domain.KatagoResponse, error) {
	reqBody, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.kataGoURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	k.log.Infow("sending analysis query", "id", query.ID, "moves", len(query.Moves), "turns", len(query.AnalyzeTurns))
	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result []domain.KatagoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, r := range result {
		if r.Error != "" {
			return nil, fmt.Errorf("engine rejected query %s: %s", query.ID, r.Error)
		}
	}
	return result, nil
}
