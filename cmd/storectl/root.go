package main

import (
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const serviceName = "storefront-service"

// app carries what every subcommand shares once the root has run
type app struct {
	config *config.Config
	db     *gorm.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Administer the storefront database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newCreateUserCmd(a),
		newSeedCmd(a),
		newStockCmd(a),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "storectl",
	}); err != nil {
		return err
	}

	db, err := database.Open(&cfg.DB)
	if err != nil {
		return err
	}
	a.config = cfg
	a.db = db
	return nil
}

func (a *app) close() error {
	defer logger.GetLogger().Sync()
	if a.db == nil {
		return nil
	}
	return database.Close(a.db)
}

func (a *app) auth() *service.Auth {
	return service.NewAuth(a.db, jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      a.config.JWT.SigningKey,
		ExpirationHours: a.config.JWT.ExpirationHours,
	}))
}

// views is a throwaway registry; the server keeps its own
func (a *app) views() *revalidate.Registry {
	return revalidate.New()
}
