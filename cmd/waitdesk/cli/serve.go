package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waitdesk/waitdesk/internal/config"
	"github.com/waitdesk/waitdesk/internal/server"
	"github.com/waitdesk/waitdesk/internal/service"
)

const banner = `
            _ _      _           _
 __ __ ____(_) |_ __| |___ ___ | |__
 \ V  V / _' | |  _/ _' / -_|_-< | / /
  \_/\_/\__,_|_|\__\__,_\___/__/ |_\_\
`

func newServeCmd() *cobra.Command {
	var (
		noUI bool
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long:  "Start the HTTP server that serves the admin API and the dashboard pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), noUI, dev)
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "HTTP listen port")
	cmd.Flags().String("host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&noUI, "no-ui", false, "Serve the API only")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode: debug logging, error details in responses")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(ctx context.Context, noUI, dev bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dev {
		cfg.App.Env = config.EnvDevelopment
		cfg.Logging.Level = "debug"
	}
	logger := cfg.NewLogger()

	fmt.Print(banner)
	fmt.Println()

	secret, err := cfg.JWTSecret(logger)
	if err != nil {
		return err
	}
	codec, err := service.NewTokenCodec(secret)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	sessions := service.NewSessionManager(codec, cfg.Auth.CookieName, cfg.IsProduction())

	if ctx == nil {
		ctx = context.Background()
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer provider.Close()
	logger.Info("record store ready", "driver", st.Driver())

	admins, err := st.CountAdmins(ctx)
	if err != nil {
		logger.Warn("failed to count admins", "error", err)
	} else if admins == 0 {
		logger.Warn("no admin account found, run: waitdesk admin create")
	}

	shutdown, _ := cfg.ShutdownTimeout()
	loc, _ := cfg.Location()
	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: shutdown,
		CORSOrigins:     cfg.Server.CORSOrigins,
		EnableUI:        cfg.Server.EnableUI && !noUI,
		LoginRateLimit:  cfg.Server.LoginRateLimit,
		ExportRateLimit: cfg.Server.ExportRateLimit,
		Production:      cfg.IsProduction(),
		Location:        loc,
		Version:         versionString(),
	}

	srv := server.New(srvCfg, st, provider.Registry(), sessions, logger)

	fmt.Printf("→ waitdesk %s (%s)\n", versionString(), cfg.App.Env)
	fmt.Printf("→ Listening on http://%s:%d\n", srvCfg.Host, srvCfg.Port)
	if srvCfg.EnableUI {
		fmt.Printf("→ Dashboard:  http://%s:%d/dashboard\n", srvCfg.Host, srvCfg.Port)
	}
	fmt.Printf("→ OpenAPI:    http://%s:%d/openapi.json\n", srvCfg.Host, srvCfg.Port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", srvCfg.Host, srvCfg.Port)
	fmt.Println()

	return srv.ListenAndServe(ctx)
}
