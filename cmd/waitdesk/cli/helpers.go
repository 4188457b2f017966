package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/waitdesk/waitdesk/internal/config"
	"github.com/waitdesk/waitdesk/internal/store"
)

// openStore connects the configured database and migrates it. Close the
// provider when done.
func openStore(ctx context.Context, cfg *config.YAMLConfig) (*store.Provider, *store.Store, error) {
	cc, err := cfg.ConnectionConfig()
	if err != nil {
		return nil, nil, err
	}
	provider := store.NewProvider(store.NewRegistry(), cc)
	st, err := provider.Store(ctx)
	if err != nil {
		provider.Close()
		return nil, nil, err
	}
	return provider, st, nil
}

// promptPassword reads a password from the terminal without echo. With
// confirm set it asks twice and requires both to match.
func promptPassword(label string, confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%s: no terminal to prompt on, pass it by flag", strings.ToLower(label))
	}

	fmt.Print(label + ": ")
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if !confirm {
		return string(pw), nil
	}

	fmt.Print("Confirm " + strings.ToLower(label) + ": ")
	again, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	if string(pw) != string(again) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// versionString returns a display version string.
func versionString() string {
	if appVersion == "" || appVersion == "dev" {
		return "dev"
	}
	if strings.HasPrefix(appVersion, "v") {
		return appVersion
	}
	return "v" + appVersion
}
