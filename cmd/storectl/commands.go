package main

import (
	"fmt"
	"os"
	"storefront-service/internal/model"
	"storefront-service/internal/report"
	"storefront-service/internal/seed"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(a.db); err != nil {
				return err
			}
			logger.GetLogger().Info("Schema migrated", zap.String("driver", a.config.DB.Driver))
			return nil
		},
	}
}

func newCreateUserCmd(a *app) *cobra.Command {
	var (
		in   service.RegisterInput
		role string
	)
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth().CreateUser(cmd.Context(), in, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s> as %s\n", user.ID, user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "nome", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&in.Password, "senha", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&role, "role", model.RoleAdmin, "admin or customer")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("senha")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Load categories, products and banners from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			catalog, err := seed.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			views := a.views()
			seeder := seed.New(service.NewCatalog(a.db, views), service.NewBanners(a.db, views))
			result, err := seeder.Apply(cmd.Context(), catalog)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %d, products: %d, banners: %d, skipped: %d\n",
				result.Categories, result.Products, result.Banners, result.Skipped)
			return nil
		},
	}
}

func newStockCmd(a *app) *cobra.Command {
	var lowStock int
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print stock levels, lowest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := report.Stock(cmd.Context(), a.db, lowStock)
			if err != nil {
				return err
			}
			return report.RenderStock(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVar(&lowStock, "baixo", 5, "stock at or below this value is flagged as low")
	return cmd
}
