package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"baleafiya/db"
	"baleafiya/models"

	"github.com/jackc/pgx/v5"
)

// PostgresCartStore keeps one row per user in the carts table, lines as
// a JSON blob.
type PostgresCartStore struct{}

func NewPostgresCartStore() *PostgresCartStore {
	return &PostgresCartStore{}
}

func (s *PostgresCartStore) Load(ctx context.Context, userID int64) (*models.CartSnapshot, error) {
	var linesJSON []byte
	var pickupPointID string
	err := db.Pool.QueryRow(ctx, `
		SELECT lines, pickup_point_id FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&linesJSON, &pickupPointID)
	if errors.Is(err, pgx.ErrNoRows) {
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
	return &models.CartSnapshot{Lines: lines, PickupPointID: pickupPointID}, nil
}

func (s *PostgresCartStore) Save(ctx context.Context, userID int64, snap *models.CartSnapshot) error {
	linesJSON, err := json.Marshal(snap.Lines)
	if err != nil {
		return fmt.Errorf("marshal cart lines: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO carts (user_id, lines, pickup_point_id, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			lines = $2,
			pickup_point_id = $3,
			updated_at = now()`,
		userID, linesJSON, snap.PickupPointID,
	)
	return err
}
