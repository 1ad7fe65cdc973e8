package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.CheckoutSession) error {
	query := `
        INSERT INTO checkout_sessions (id, owner_id, product_id, shop_id, step, product, form, created_at, updated_at)
        VALUES (:id, :owner_id, :product_id, :shop_id, :step, :product, :form, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CheckoutSession, error) {
	var s model.CheckoutSession
	query := `
        SELECT id, owner_id, product_id, shop_id, step, product, form, created_at, updated_at
        FROM checkout_sessions WHERE id = $1 LIMIT 1
    `
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.CheckoutSession) error {
	query := `
        UPDATE checkout_sessions
        SET step = :step, form = :form, updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, s)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM checkout_sessions WHERE id = $1`, id)
	return err
}

// DeleteStale removes sessions untouched since before.
func (r *PGRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM checkout_sessions WHERE updated_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
