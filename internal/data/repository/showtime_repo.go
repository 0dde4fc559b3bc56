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

type ShowtimeRepository interface {
	FindByShowing(ctx context.Context, key entity.ShowingKey) (*entity.Showtime, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Showtime, error)
	Upsert(ctx context.Context, showtime *entity.Showtime) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) FindByShowing(ctx context.Context, key entity.ShowingKey) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theatre_id, show_time
		FROM showtimes
		WHERE movie_id = $1 AND theatre_id = $2 AND show_time = $3
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, key.MovieID, key.TheatreID, key.ShowTime).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheatreID,
		&showtime.ShowTime,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime",
			zap.Error(err),
			zap.String("showing", key.String()),
		)
		return nil, fmt.Errorf("failed to find showtime %s: %w", key.String(), err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theatre_id, show_time
		FROM showtimes
		WHERE movie_id = $1
		ORDER BY theatre_id, show_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find showtimes by movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("failed to find showtimes for movie %s: %w", movieID, err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		if err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheatreID,
			&showtime.ShowTime,
		); err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan showtime: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Upsert(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, theatre_id, show_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			movie_id = EXCLUDED.movie_id,
			theatre_id = EXCLUDED.theatre_id,
			show_time = EXCLUDED.show_time
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.TheatreID,
		showtime.ShowTime,
	)
	if err != nil {
		r.log.Error("Failed to upsert showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID),
		)
		return fmt.Errorf("failed to upsert showtime %s: %w", showtime.ID, err)
	}

	return nil
}
