package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Movie, error)
	FindAll(ctx context.Context, filter entity.MovieFilter, offset, limit int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error)

	// Upsert inserts or replaces a catalog entry, keyed by ID.
	Upsert(ctx context.Context, movie *entity.Movie) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, genres, rating, synopsis, duration_in_minutes, status,
		       poster_path, backdrop_path, trailer_key, created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genres,
		&movie.Rating,
		&movie.Synopsis,
		&movie.DurationInMinutes,
		&movie.Status,
		&movie.PosterPath,
		&movie.BackdropPath,
		&movie.TrailerKey,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie %s: %w", id, err)
	}

	return movie, nil
}

// whereMovies renders the optional filter as a WHERE clause.
func whereMovies(filter entity.MovieFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conds = append(conds, fmt.Sprintf("$%d = ANY(genres)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter, offset, limit int) ([]*entity.Movie, error) {
	where, args := whereMovies(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY rating DESC, title LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.String("status", string(filter.Status)),
			zap.String("genre", filter.Genre),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	where, args := whereMovies(filter)
	query := `SELECT COUNT(*) FROM movies` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Upsert(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, genres, rating, synopsis, duration_in_minutes, status,
		                    poster_path, backdrop_path, trailer_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			genres = EXCLUDED.genres,
			rating = EXCLUDED.rating,
			synopsis = EXCLUDED.synopsis,
			duration_in_minutes = EXCLUDED.duration_in_minutes,
			status = EXCLUDED.status,
			poster_path = EXCLUDED.poster_path,
			backdrop_path = EXCLUDED.backdrop_path,
			trailer_key = EXCLUDED.trailer_key,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genres,
		movie.Rating,
		movie.Synopsis,
		movie.DurationInMinutes,
		movie.Status,
		movie.PosterPath,
		movie.BackdropPath,
		movie.TrailerKey,
	)
	if err != nil {
		r.log.Error("Failed to upsert movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to upsert movie %s: %w", movie.ID, err)
	}

	return nil
}
