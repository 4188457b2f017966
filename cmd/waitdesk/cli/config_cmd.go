package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waitdesk/waitdesk/internal/config"
	"github.com/waitdesk/waitdesk/internal/connector"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage waitdesk configuration",
		Long:  "Initialize a default configuration file or display the current effective configuration.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// ---------- config init ----------

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default waitdesk.yaml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")
	cmd.Flags().StringVar(&path, "path", config.FileName+".yaml", "Where to write the file")

	return cmd
}

func runConfigInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Set auth.jwt_secret (or WAITDESK_AUTH_JWT_SECRET), then run 'waitdesk db migrate' and 'waitdesk admin create'.")
	return nil
}

// ---------- config show ----------

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Printf("# Config file: %s\n", file)
	} else {
		fmt.Println("# Config file: (none found, using defaults and environment)")
	}

	if cfg.Auth.JWTSecret != "" {
		cfg.Auth.JWTSecret = "********"
	}
	cfg.Database.DSN = connector.RedactDSN(cfg.Database.Driver, cfg.Database.DSN)

	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
