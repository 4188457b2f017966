package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waitdesk/waitdesk/internal/connector"
	"github.com/waitdesk/waitdesk/internal/store"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "db",
		Aliases: []string{"database"},
		Short:   "Manage the dashboard database",
		Long:    "Apply the schema, test the connection and load demo data.",
	}

	cmd.AddCommand(newDBMigrateCmd())
	cmd.AddCommand(newDBPingCmd())
	cmd.AddCommand(newDBSeedCmd())

	return cmd
}

// ---------- db migrate ----------

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the admins and waitlist tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// Opening the store migrates it.
			provider, st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer provider.Close()
			fmt.Printf("Schema up to date (%s)\n", st.Driver())
			return nil
		},
	}
}

// ---------- db ping ----------

func newDBPingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Test the database connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBPing(cmd.Context(), timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Connection timeout")

	return cmd
}

func runDBPing(ctx context.Context, timeout time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cc, err := cfg.ConnectionConfig()
	if err != nil {
		return err
	}

	registry := store.NewRegistry()
	defer registry.CloseAll()

	fmt.Printf("Connecting to %s (%s)...\n", cc.Driver, connector.RedactDSN(cc.Driver, cc.DSN))
	start := time.Now()
	conn, err := registry.Connect(store.PrimaryConnection, cc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	fmt.Printf("OK (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// ---------- db seed ----------

func newDBSeedCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo waitlist signups",
		Long:  "Insert generated signups spread over the last 30 days. The same --seed always produces the same data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSeed(cmd.Context(), count, seed)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "Number of signups to insert")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")

	return cmd
}

func runDBSeed(ctx context.Context, count int, seed uint64) error {
	if count <= 0 {
		return fmt.Errorf("--count must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	n, err := st.SeedWaitlist(ctx, store.DemoEntries(count, time.Now(), seed))
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d waitlist signups\n", n)
	return nil
}
