package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourhub/internal/config"
	"tourhub/internal/container"
	"tourhub/internal/monitor"
	"tourhub/models"
	"tourhub/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tourhub-cli",
		Short: "Tourhub admin CLI for account bootstrap, exports and monitor checks",
	}

	rootCmd.AddCommand(
		newCreateAdminCmd(),
		newExportCmd(),
		newMonitorSummaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openContainer wires the full dependency container against the configured
// database. Callers must Close it.
func openContainer() (*container.Container, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	c, err := container.New(cfg, zap.NewNop())
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := c.InitWithDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func newCreateAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin [name] [email] [password]",
		Short: "Create an administrator account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			user, err := c.AuthService.Register(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := c.UserRepo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
				return err
			}

			fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [bookings|subscribers]",
		Short: "Export bookings or subscribers to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			switch args[0] {
			case "bookings":
				err = c.Exporter.Bookings(ctx, ports.BookingFilter{}, f)
			case "subscribers":
				err = c.Exporter.Subscribers(ctx, f)
			default:
				return fmt.Errorf("unknown export target %q", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "export.xlsx", "Output file path")
	return cmd
}

func newMonitorSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor-summary [monitor-id]",
		Short: "Print latency and uptime summary for a monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("monitor id must be a UUID: %w", err)
			}

			c, err := openContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			if _, err := c.MonitorRepo.GetByID(ctx, id); err != nil {
				return err
			}
			checks, err := c.MonitorRepo.RecentChecks(ctx, id, c.Config.Monitor.RetainChecks)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(monitor.Summarize(id, checks))
		},
	}
	return cmd
}
