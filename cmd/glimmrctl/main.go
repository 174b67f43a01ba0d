// Command glimmrctl runs operator tasks against the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"glimmr/internal/core/cache"
	"glimmr/internal/core/config"
	"glimmr/internal/core/logger"
	"glimmr/internal/feature/profile"
	"glimmr/internal/seed"
	"glimmr/internal/store"
)

type env struct {
	cfg *config.Config
	log *zap.Logger
	st  *store.Store
}

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
		cleanup = func() {}
		e       = &env{}
	)
	root := &cobra.Command{
		Use:          "glimmrctl",
		Short:        "Operator tasks for the Glimmr store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			e.log, cleanup = logger.New(level, cfg.Log.JSON)
			e.cfg = cfg
			// migrate runs it explicitly
			cfg.DB.AutoMigrate = false
			e.st, err = store.Open(cmd.Context(), cfg.DB, e.log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			defer cleanup()
			if e.st == nil {
				return nil
			}
			return e.st.Close(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newMigrateCmd(e), newSeedCmd(e), newPromoteCmd(e))
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create indexes (mongo) or tables (sql)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			e.log.Info("migration complete", zap.String("driver", e.cfg.DB.Driver))
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	var (
		file  string
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := seed.File(file)
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), e.st.Products, products, reset, e.log)
			if err != nil {
				return err
			}
			if e.cfg.Redis.Addr != "" {
				c := cache.New(e.cfg.Redis.Addr, e.cfg.Redis.Password, e.cfg.Redis.DB)
				defer c.Close()
				if err := c.Bump(cmd.Context(), "products"); err != nil {
					e.log.Warn("catalog cache not invalidated", zap.Error(err))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d products (deleted %d)\n", res.Inserted, res.Deleted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML (default: embedded sample catalog)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete every product first")
	return cmd
}

func newPromoteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := profile.NewService(e.st.Users, e.st.Products, e.log)
			u, err := svc.Promote(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", u.Email, u.ID, u.Role)
			return nil
		},
	}
}
