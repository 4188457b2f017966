package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waitdesk/waitdesk/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var (
		baseURL    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the admin API",
		Example: `  waitdesk openapi
  waitdesk openapi --base-url https://admin.example.com -o openapi.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpenAPI(baseURL, outputFile)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Server URL to advertise in the document")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write spec to file instead of stdout")

	return cmd
}

func runOpenAPI(baseURL, outputFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc := openapi.Generate(openapi.Options{
		BaseURL:    baseURL,
		Version:    versionString(),
		CookieName: cfg.Auth.CookieName,
	})
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(b))
		return nil
	}
	if err := os.WriteFile(outputFile, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	fmt.Printf("Wrote %s\n", outputFile)
	return nil
}
