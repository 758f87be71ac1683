package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lead-voucher-backend/internal/features/lead/models"
)

const keySubmissions = "leads:submissions"

// Store appends entries to a capped Redis list.
type Store struct {
	client redis.Cmdable
	maxLen int64
}

func NewStore(client redis.Cmdable, maxLen int64) *Store {
	return &Store{client: client, maxLen: maxLen}
}

func (s *Store) Append(ctx context.Context, entry models.LogEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, keySubmissions, b)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, keySubmissions, -s.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

func (s *Store) Entries(ctx context.Context) ([]models.LogEntry, error) {
	raw, err := s.client.LRange(ctx, keySubmissions, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	out := make([]models.LogEntry, 0, len(raw))
	for _, r := range raw {
		var e models.LogEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
