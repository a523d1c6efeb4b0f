package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/config"
	"github.com/employee-management-api/internal/database"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
	"github.com/employee-management-api/internal/service"
)

func createUserCmd() *cobra.Command {
	var (
		req  dto.RegisterRequest
		role string
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account with the given role",
		Long: `Create a user account directly in the database.

Public registration always yields the employee role; use this command
to bootstrap the first admin or to add managers.

Examples:
  emsctl create-user --username root --email root@example.com --password secret --role admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Struct(&req); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}

			cfg := config.Load()
			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get sql.DB: %w", err)
			}
			defer sqlDB.Close()

			repos := repository.NewRegistry(db)
			engine := service.NewEngine(repos, nil, cfg.Notifications.AdminRecipientID, newLogger())
			tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			services := service.New(engine, nil, tokens, service.PasswordResetPolicy{})

			user, err := services.Auth.CreateUser(context.Background(), &req, domain.Role(role))
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (id=%d, role=%s)\n", user.Username, user.ID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "role: admin, manager or employee")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
