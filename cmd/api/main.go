package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	dbpkg "github.com/devCaiqueWS/barber-scheduler/internal/db"
	"github.com/devCaiqueWS/barber-scheduler/internal/logger"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "barber-scheduler",
		Short: "Barber availability and booking API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrate needs STORE=%s", config.StorePostgres)
			}

			log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db, cfg); err != nil {
				return err
			}

			log.Info("schema up to date")
			return nil
		},
	}
}

// tokenCmd signs a barber token with JWT_SECRET. Accounts live elsewhere; this
// is for operators and local testing.
func tokenCmd() *cobra.Command {
	var (
		barberID     uint
		barbershopID uint
		ttl          time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a barber access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if barberID == 0 || barbershopID == 0 {
				return fmt.Errorf("--barber and --shop are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, err := middleware.IssueToken(cfg.JWTSecret, barberID, barbershopID, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().UintVar(&barberID, "barber", 0, "barber id (token subject)")
	cmd.Flags().UintVar(&barbershopID, "shop", 0, "barbershop id")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}

func logConfig(log *zap.Logger, cfg *config.Config) {
	log.Info("config",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.Store),
		zap.String("shop_timezone", cfg.ShopTimezone),
		zap.Int("slot_minutes", cfg.SlotMinutes),
		zap.Int("lead_time_minutes", cfg.LeadTimeMinutes),
		zap.Bool("redis_lock", cfg.RedisAddr != ""),
		zap.Bool("kafka_audit", cfg.KafkaBrokers != ""),
	)
}
