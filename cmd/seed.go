package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
	"github.com/goodsru/user-panel/internal/core/service"
	"github.com/goodsru/user-panel/internal/infrastructure/config"
	"github.com/goodsru/user-panel/internal/infrastructure/db/postgres"
	"github.com/goodsru/user-panel/pkg/logger"
)

const seedAdminUsername = "admin@goods.ru"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the bootstrap admin account",
	Long: `Insert the bootstrap admin account (` + seedAdminUsername + `).
The password is taken from SEED_ADMIN_PASSWORD. Seeding an already
provisioned database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

		db, err := postgres.Connect(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		users := service.NewUserService(postgres.NewUserRepository(db), log)
		_, err = users.Create(cmd.Context(), ports.CreateUserInput{
			FirstName: "admin",
			LastName:  "admin",
			Username:  seedAdminUsername,
			Password:  password,
			Role:      string(domain.RoleAdmin),
		})
		if err != nil {
			if errors.Is(err, domain.ErrUsernameTaken) {
				log.Info().Str("username", seedAdminUsername).Msg("admin already seeded")
				return nil
			}
			return err
		}

		log.Info().Str("username", seedAdminUsername).Msg("admin account seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
