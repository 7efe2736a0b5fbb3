package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vbonduro/boxbox/internal/domain"
)

const carColumns = `id, name, team, engine, top_speed, created_at, updated_at`

type CarStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCarStore(db *sqlx.DB) *CarStore {
	return &CarStore{db: db, now: now}
}

func (s *CarStore) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	id := uuid.NewString()
	ts := s.now()

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO f1cars (id, name, team, engine, top_speed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, car.Name, car.Team, car.Engine, car.TopSpeed, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the car with id, or nil if there is none.
func (s *CarStore) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	if !isID(id) {
		return nil, nil
	}
	car := &domain.Car{}
	err := s.db.GetContext(ctx, car, s.db.Rebind(`SELECT `+carColumns+` FROM f1cars WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return car, nil
}

func (s *CarStore) List(ctx context.Context, opts ListOptions) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM f1cars ` + opts.orderClause()
	var args []any
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	var cars []*domain.Car
	if err := s.db.SelectContext(ctx, &cars, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	return cars, nil
}

func (s *CarStore) Update(ctx context.Context, car *domain.Car) error {
	if !isID(car.ID) {
		return notFound("car")
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE f1cars SET name = ?, team = ?, engine = ?, top_speed = ?, updated_at = ? WHERE id = ?
	`), car.Name, car.Team, car.Engine, car.TopSpeed, s.now(), car.ID)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	return expectOneRow(result, "car")
}

func (s *CarStore) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return notFound("car")
	}
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM f1cars WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	return expectOneRow(result, "car")
}

func (s *CarStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM f1cars`); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return n, nil
}
