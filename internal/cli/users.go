package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

const minPasswordLength = 8

var (
	usersAddAdmin      bool
	usersSetAdminValue bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage the user accounts that own results and sign in to the API",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user already exists
		_, err = services.UserRepo.FindByEmail(cmd.Context(), email)
		if err == nil {
			return fmt.Errorf("user already exists: %s", email)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		password, err := promptNewPassword(cmd, "Enter password: ", "Confirm password: ")
		if err != nil {
			return err
		}

		// Hash password
		hashedPassword, err := services.AuthService.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Create user
		user := domain.NewUser(email, hashedPassword, usersAddAdmin)
		if err := services.UserRepo.Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created successfully\n", email)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user and their results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Confirm deletion
		fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete user '%s' and all of their results? (yes/no): ", email)
		confirm, _ := readLine(bufio.NewReader(cmd.InOrStdin()))
		if confirm != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}

		if err := services.UserRepo.Delete(cmd.Context(), email); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' deleted successfully\n", email)
		return nil
	},
}

var usersUpdatePasswordCmd = &cobra.Command{
	Use:   "update-password <email>",
	Short: "Update user password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user exists
		user, err := services.UserRepo.FindByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("user not found: %s", email)
		}

		password, err := promptNewPassword(cmd, "Enter new password: ", "Confirm new password: ")
		if err != nil {
			return err
		}

		// Hash password
		hashedPassword, err := services.AuthService.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Update user
		user.Password = hashedPassword
		user.UpdatedAt = time.Now()
		if err := services.UserRepo.Update(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password updated for user '%s'\n", email)
		return nil
	},
}

var usersSetAdminCmd = &cobra.Command{
	Use:   "set-admin <email>",
	Short: "Grant or revoke the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserRepo.FindByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("user not found: %s", email)
		}

		user.SetAdmin(usersSetAdminValue)
		user.UpdatedAt = time.Now()
		if err := services.UserRepo.Update(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Roles for user '%s': %s\n", email, strings.Join(user.Roles, ", "))
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No users found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tROLES\tCREATED AT\tUPDATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				user.ID,
				user.Email,
				strings.Join(user.Roles, ","),
				user.CreatedAt.Format(domain.TimeLayout),
				user.UpdatedAt.Format(domain.TimeLayout),
			)
		}
		w.Flush()

		return nil
	},
}

// promptNewPassword asks for a password twice. A terminal gets hidden
// input; piped input is read line by line.
func promptNewPassword(cmd *cobra.Command, prompt, confirmPrompt string) (string, error) {
	in := bufio.NewReader(cmd.InOrStdin())

	password, err := readPassword(cmd, in, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	confirmPassword, err := readPassword(cmd, in, confirmPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if password != confirmPassword {
		return "", fmt.Errorf("passwords do not match")
	}

	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	return password, nil
}

func readPassword(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		return string(password), err
	}

	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	usersAddCmd.Flags().BoolVar(&usersAddAdmin, "admin", false, "grant the admin role")
	usersSetAdminCmd.Flags().BoolVar(&usersSetAdminValue, "admin", true, "true grants the admin role, false revokes it")

	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersUpdatePasswordCmd)
	usersCmd.AddCommand(usersSetAdminCmd)
	usersCmd.AddCommand(usersListCmd)
}
