package cmd

import (
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog (movies, theatres, showtimes)",
	Long:  `Upserts the demo catalog. Running it again refreshes the rows in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		ctx := cmd.Context()
		repos := repository.NewRepository(db, logger)

		for i := range seedMovies {
			if err := repos.Movie.Upsert(ctx, &seedMovies[i]); err != nil {
				return fmt.Errorf("seed movie %s: %w", seedMovies[i].ID, err)
			}
		}
		logger.Info("Movies seeded", zap.Int("count", len(seedMovies)))

		for i := range seedTheatres {
			if err := repos.Theatre.Upsert(ctx, &seedTheatres[i]); err != nil {
				return fmt.Errorf("seed theatre %s: %w", seedTheatres[i].ID, err)
			}
		}
		logger.Info("Theatres seeded", zap.Int("count", len(seedTheatres)))

		for i := range seedShowtimes {
			if err := repos.Showtime.Upsert(ctx, &seedShowtimes[i]); err != nil {
				return fmt.Errorf("seed showtime %s: %w", seedShowtimes[i].ID, err)
			}
		}
		logger.Info("Showtimes seeded", zap.Int("count", len(seedShowtimes)))

		return nil
	},
}

func ptr(s string) *string { return &s }

var seedMovies = []entity.Movie{
	{
		ID: "movie_1", Title: "Inception", Genres: []string{"Sci-Fi", "Thriller"}, Rating: 8.8,
		Synopsis:          "A thief who enters dream worlds to steal secrets from people's subconscious is given a chance to redeem himself by planting an idea in a target's mind.",
		DurationInMinutes: 148, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/9gk7admal4BnG2iaqDXk37k6D5r.jpg"), BackdropPath: ptr("/8ZTVqvKDQ8emSGUEMjsS4yHAwrp.jpg"), TrailerKey: ptr("YoHD9XEInc0"),
	},
	{
		ID: "movie_2", Title: "The Dark Knight", Genres: []string{"Action", "Drama"}, Rating: 9.0,
		Synopsis:          "Batman raises the stakes in his war on crime against the criminal mastermind known as the Joker who throws Gotham into chaos.",
		DurationInMinutes: 152, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/qJ2tW6WMUDux911r6m7haRef0WH.jpg"), BackdropPath: ptr("/hkBaDkMWbLaf8B1lsWsKX7Ew3Xq.jpg"), TrailerKey: ptr("EXeTwQWrcwY"),
	},
	{
		ID: "movie_3", Title: "Interstellar", Genres: []string{"Sci-Fi", "Adventure"}, Rating: 8.6,
		Synopsis:          "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		DurationInMinutes: 169, Status: entity.MovieStatusComingSoon,
		PosterPath: ptr("/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg"), BackdropPath: ptr("/rAiYTfKGqDCRIIqo664sY9XZIvQ.jpg"), TrailerKey: ptr("zSWdZVtXT7E"),
	},
	{
		ID: "movie_4", Title: "Avengers: Endgame", Genres: []string{"Action", "Sci-Fi"}, Rating: 8.4,
		Synopsis:          "The Avengers assemble one last time to reverse Thanos' actions and restore balance to the universe.",
		DurationInMinutes: 181, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/or06FN3Dka5tukK1e9sl16pB3iy.jpg"), BackdropPath: ptr("/7RyHsO4yDX6MvOSc2nMRXaYjJ5s.jpg"), TrailerKey: ptr("hA6hldpSTF8"),
	},
	{
		ID: "movie_5", Title: "Parasite", Genres: []string{"Thriller", "Drama"}, Rating: 8.5,
		Synopsis:          "A poor family schemes to become employed by a wealthy family by infiltrating their household, but their simple plan quickly becomes a complicated mess.",
		DurationInMinutes: 132, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg"), BackdropPath: ptr("/hiHGRbyTVam2S98ba3d17KbbgQh.jpg"), TrailerKey: ptr("5xH0HfJHyaY"),
	},
	{
		ID: "movie_6", Title: "Joker", Genres: []string{"Crime", "Drama"}, Rating: 8.4,
		Synopsis:          "A troubled party clown descends into madness, becoming the architect of society's downfall.",
		DurationInMinutes: 122, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/udDclJoHjfjb8Ekgsd4FDteNwTj.jpg"), BackdropPath: ptr("/nMKdUUepR0i5zn0y1T4CsSB5woU.jpg"), TrailerKey: ptr("zAGVQLHvwOY"),
	},
	{
		ID: "movie_7", Title: "Dune", Genres: []string{"Sci-Fi", "Adventure"}, Rating: 8.1,
		Synopsis:          "A noble family becomes embroiled in war over the desert planet Arrakis, the only source of the valuable spice melange.",
		DurationInMinutes: 155, Status: entity.MovieStatusComingSoon,
		PosterPath: ptr("/8RpLvcs5dXwL0Cl6SP6FwDfNYvZ.jpg"), BackdropPath: ptr("/xOMo8BRK7PfcJv9JCnx7s5hj0PX.jpg"), TrailerKey: ptr("8g18jFHclXk"),
	},
	{
		ID: "movie_8", Title: "The Matrix", Genres: []string{"Sci-Fi", "Action"}, Rating: 8.7,
		Synopsis:          "A hacker discovers the truth about reality and joins a rebellion against the machines controlling it.",
		DurationInMinutes: 136, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/f89U3ADr1oiB1s9GkdPOEpQBjQF.jpg"), BackdropPath: ptr("/fNG7i7RqMErkcqhohV2a6cV1Ehy.jpg"), TrailerKey: ptr("vKQi3bBA1y8"),
	},
	{
		ID: "movie_9", Title: "Titanic", Genres: []string{"Romance", "Drama"}, Rating: 7.9,
		Synopsis:          "A love story aboard the doomed luxury liner that hits an iceberg on its maiden voyage.",
		DurationInMinutes: 195, Status: entity.MovieStatusNowShowing,
		PosterPath: ptr("/9xjZS2rlVxm8SI1ezQeQ1kQ6Jv4.jpg"), BackdropPath: ptr("/kXfqcdQKsToO0OUXHcrrNCHDBzO.jpg"), TrailerKey: ptr("2e-eXJ6Hg4Q"),
	},
	{
		ID: "movie_10", Title: "Oppenheimer", Genres: []string{"Drama", "History"}, Rating: 8.9,
		Synopsis:          "The story of American scientist J. Robert Oppenheimer and his role in the development of the atomic bomb.",
		DurationInMinutes: 180, Status: entity.MovieStatusComingSoon,
		PosterPath: ptr("/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg"), BackdropPath: ptr("/z2yQgX5Qb4J5S2vj4YmNhYmU2ZB.jpg"), TrailerKey: ptr("uYPbbksJxIg"),
	},
}

var seedTheatres = []entity.Theatre{
	{ID: "theatre_1", Name: "Grand Cinema", Location: "Downtown", ScreenRows: 10, SeatsPerRow: 10},
	{ID: "theatre_2", Name: "City Plex", Location: "Mall Road", ScreenRows: 5, SeatsPerRow: 8},
	{ID: "theatre_3", Name: "IMAX Arena", Location: "Tech Park", ScreenRows: 10, SeatsPerRow: 10},
}

var seedShowtimes = []entity.Showtime{
	{ID: "show_1", MovieID: "movie_1", TheatreID: "theatre_1", ShowTime: "10:30"},
	{ID: "show_2", MovieID: "movie_1", TheatreID: "theatre_1", ShowTime: "18:45"},
	{ID: "show_3", MovieID: "movie_1", TheatreID: "theatre_2", ShowTime: "20:30"},
	{ID: "show_4", MovieID: "movie_2", TheatreID: "theatre_1", ShowTime: "21:00"},
	{ID: "show_5", MovieID: "movie_3", TheatreID: "theatre_3", ShowTime: "16:30"},
	{ID: "show_6", MovieID: "movie_4", TheatreID: "theatre_2", ShowTime: "14:00"},
	{ID: "show_7", MovieID: "movie_5", TheatreID: "theatre_1", ShowTime: "19:15"},
	{ID: "show_8", MovieID: "movie_6", TheatreID: "theatre_2", ShowTime: "22:00"},
	{ID: "show_9", MovieID: "movie_8", TheatreID: "theatre_3", ShowTime: "20:45"},
	{ID: "show_10", MovieID: "movie_9", TheatreID: "theatre_1", ShowTime: "17:00"},
}
