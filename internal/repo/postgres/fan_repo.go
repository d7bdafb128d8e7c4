package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	"github.com/joaobatista235/know-your-fan/internal/services/fans"
)

const uniqueViolationCode = "23505"

// FanRepo stores the fan aggregate as one jsonb document per owner.
type FanRepo struct {
	pool *pgxpool.Pool
}

func NewFanRepo(pool *pgxpool.Pool) *FanRepo {
	return &FanRepo{pool: pool}
}

func (r *FanRepo) Create(ctx context.Context, fan *model.Fan) (*model.Fan, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if fan == nil || strings.TrimSpace(fan.ID) == "" || strings.TrimSpace(fan.OwnerID) == "" {
		return nil, fmt.Errorf("invalid fan create payload")
	}

	doc, err := json.Marshal(fan)
	if err != nil {
		return nil, fmt.Errorf("marshal fan aggregate: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO fans (id, owner_id, doc, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, $4, $5)
`, fan.ID, fan.OwnerID, doc, fan.CreatedAt.UTC(), fan.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fans.ErrProfileExists
		}
		return nil, fmt.Errorf("insert fan aggregate: %w", err)
	}

	return fan.Clone(), nil
}

func (r *FanRepo) FindByOwner(ctx context.Context, ownerID string) (*model.Fan, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	return scanFan(r.pool.QueryRow(ctx, `
SELECT doc
FROM fans
WHERE owner_id = $1
LIMIT 1
`, ownerID))
}

func (r *FanRepo) FindByID(ctx context.Context, id string) (*model.Fan, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("fan id is required")
	}

	return scanFan(r.pool.QueryRow(ctx, `
SELECT doc
FROM fans
WHERE id = $1
LIMIT 1
`, id))
}

func (r *FanRepo) Update(ctx context.Context, fan *model.Fan) (*model.Fan, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if fan == nil || strings.TrimSpace(fan.ID) == "" {
		return nil, fmt.Errorf("invalid fan update payload")
	}

	doc, err := json.Marshal(fan)
	if err != nil {
		return nil, fmt.Errorf("marshal fan aggregate: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE fans
SET doc = $2::jsonb, updated_at = $3
WHERE id = $1
`, fan.ID, doc, fan.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("update fan aggregate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fans.ErrProfileNotFound
	}

	return fan.Clone(), nil
}

func (r *FanRepo) Delete(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM fans
WHERE id = $1
`, id)
	if err != nil {
		return false, fmt.Errorf("delete fan aggregate: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanFan(row pgx.Row) (*model.Fan, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fans.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan fan aggregate: %w", err)
	}

	var fan model.Fan
	if err := json.Unmarshal(doc, &fan); err != nil {
		return nil, fmt.Errorf("unmarshal fan aggregate: %w", err)
	}

	return &fan, nil
}
