package cmd

import (
	"fmt"
	"os"

	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "movie-booking",
	Short:        "Movie ticket booking service",
	Long:         `Browse movies and showtimes, see which seats are free and book them.`,
	SilenceUsage: true,
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, logger and database shared by every command.
func bootstrap() (*utils.Config, *zap.Logger, database.PgxIface, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("Database connected successfully")

	return config, logger, db, nil
}
