package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waitdesk/waitdesk/internal/config"
)

var (
	cfgFile    string
	envFile    string
	appVersion string
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	appVersion = version
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitdesk",
		Short: "Admin dashboard for waitlist signups",
		Long: `waitdesk serves the internal dashboard for a product waitlist: browse, filter
and export signups, and manage who on the team has access.

Settings come from waitdesk.yaml, WAITDESK_* environment variables and a .env
file, in increasing order of precedence for the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./waitdesk.yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newWaitlistCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newOpenAPICmd())
	cmd.AddCommand(newMCPCmd())

	return cmd
}

// loadConfig reads the .env file, binds viper and returns the effective
// configuration.
func loadConfig() (*config.YAMLConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	v := viper.GetViper()
	if err := config.Bind(v, cfgFile); err != nil {
		return nil, err
	}
	return config.Load(v)
}
