package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TheatreRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Theatre, error)
	FindAll(ctx context.Context) ([]*entity.Theatre, error)
	Upsert(ctx context.Context, theatre *entity.Theatre) error
}

type theatreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheatreRepository(db database.PgxIface, log *zap.Logger) TheatreRepository {
	return &theatreRepository{
		db:  db,
		log: log.With(zap.String("repository", "theatre")),
	}
}

func (r *theatreRepository) FindByID(ctx context.Context, id string) (*entity.Theatre, error) {
	query := `
		SELECT id, name, location, screen_rows, seats_per_row
		FROM theatres
		WHERE id = $1
	`

	var theatre entity.Theatre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theatre.ID,
		&theatre.Name,
		&theatre.Location,
		&theatre.ScreenRows,
		&theatre.SeatsPerRow,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theatre by ID",
			zap.Error(err),
			zap.String("theatre_id", id),
		)
		return nil, fmt.Errorf("failed to find theatre %s: %w", id, err)
	}

	return &theatre, nil
}

func (r *theatreRepository) FindAll(ctx context.Context) ([]*entity.Theatre, error) {
	query := `
		SELECT id, name, location, screen_rows, seats_per_row
		FROM theatres
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all theatres", zap.Error(err))
		return nil, fmt.Errorf("failed to find theatres: %w", err)
	}
	defer rows.Close()

	var theatres []*entity.Theatre
	for rows.Next() {
		var theatre entity.Theatre
		if err := rows.Scan(
			&theatre.ID,
			&theatre.Name,
			&theatre.Location,
			&theatre.ScreenRows,
			&theatre.SeatsPerRow,
		); err != nil {
			r.log.Error("Failed to scan theatre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan theatre: %w", err)
		}
		theatres = append(theatres, &theatre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return theatres, nil
}

func (r *theatreRepository) Upsert(ctx context.Context, theatre *entity.Theatre) error {
	query := `
		INSERT INTO theatres (id, name, location, screen_rows, seats_per_row)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			location = EXCLUDED.location,
			screen_rows = EXCLUDED.screen_rows,
			seats_per_row = EXCLUDED.seats_per_row
	`

	_, err := r.db.Exec(ctx, query,
		theatre.ID,
		theatre.Name,
		theatre.Location,
		theatre.ScreenRows,
		theatre.SeatsPerRow,
	)
	if err != nil {
		r.log.Error("Failed to upsert theatre",
			zap.Error(err),
			zap.String("theatre_id", theatre.ID),
		)
		return fmt.Errorf("failed to upsert theatre %s: %w", theatre.ID, err)
	}

	return nil
}
