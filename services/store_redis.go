package services

import (
	"context"
	"encoding/json"
	"fmt"

	"baleafiya/models"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix   = "baleafiya:cart:"
	pickupKeyPrefix = "baleafiya:pickup:"
)

// RedisCartStore keeps two keys per user: the cart line list as JSON and
// the pickup point id as a plain string.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func (s *RedisCartStore) Load(ctx context.Context, userID int64) (*models.CartSnapshot, error) {
	cartKey := fmt.Sprintf("%s%d", cartKeyPrefix, userID)
	pickupKey := fmt.Sprintf("%s%d", pickupKeyPrefix, userID)

	linesJSON, err := s.client.Get(ctx, cartKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []models.CartLine
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &lines); err != nil {
			return nil, fmt.Errorf("unmarshal cart lines: %w", err)
		}
	}

	pickupPointID, err := s.client.Get(ctx, pickupKey).Result()
	if err == redis.Nil {
		pickupPointID = ""
	} else if err != nil {
		return nil, fmt.Errorf("load pickup point: %w", err)
	}

	return &models.CartSnapshot{Lines: lines, PickupPointID: pickupPointID}, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID int64, snap *models.CartSnapshot) error {
	linesJSON, err := json.Marshal(snap.Lines)
	if err != nil {
		return fmt.Errorf("marshal cart lines: %w", err)
	}

	cartKey := fmt.Sprintf("%s%d", cartKeyPrefix, userID)
	pickupKey := fmt.Sprintf("%s%d", pickupKeyPrefix, userID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, cartKey, linesJSON, 0)
	pipe.Set(ctx, pickupKey, snap.PickupPointID, 0)
	_, err = pipe.Exec(ctx)
	return err
}
