package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard administrators",
		Long:  "Create, list, remove and reset the password of dashboard administrators.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminDeleteCmd())
	cmd.AddCommand(newAdminPasswdCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new administrator",
		Example: `  waitdesk admin create --name Ada --email ada@example.com --password secret
  waitdesk admin create --name Ada --email ada@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(cmd.Context(), name, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runAdminCreate(ctx context.Context, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := validator.New().Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address: %q", email)
	}
	if name == "" {
		return errors.New("name is required")
	}

	if password == "" {
		var err error
		if password, err = promptPassword("Password", true); err != nil {
			return err
		}
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
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

	admin := &model.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return fmt.Errorf("an admin with email %q already exists", email)
		}
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created admin %q <%s> (id %s)\n", admin.Name, admin.Email, admin.ID)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List administrators, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(ctx context.Context, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	admins, err := st.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if jsonOutput {
		return printJSON(os.Stdout, admins)
	}

	if len(admins) == 0 {
		fmt.Println("No administrators yet. Use 'waitdesk admin create' to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tCREATED")
	for _, a := range admins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Email, a.Name, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// ---------- admin delete ----------

func newAdminDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <email>",
		Aliases: []string{"rm"},
		Short:   "Remove an administrator's access",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminDelete(cmd.Context(), args[0])
		},
	}
}

func runAdminDelete(ctx context.Context, email string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	admin, err := st.GetAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no admin with email %q", email)
	}
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	if err := st.DeleteAdmin(ctx, admin.ID); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	fmt.Printf("Removed admin %s\n", admin.Email)
	return nil
}

// ---------- admin passwd ----------

func newAdminPasswdCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <email>",
		Short: "Reset an administrator's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminPasswd(cmd.Context(), args[0], password)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (prompted if omitted)")

	return cmd
}

func runAdminPasswd(ctx context.Context, email, password string) error {
	if password == "" {
		var err error
		if password, err = promptPassword("New password", true); err != nil {
			return err
		}
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
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

	admin, err := st.GetAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no admin with email %q", email)
	}
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	admin.PasswordHash = hash
	if err := st.UpdateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	fmt.Printf("Password updated for %s\n", admin.Email)
	return nil
}
