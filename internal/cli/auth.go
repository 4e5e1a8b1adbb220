package cli

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])

		fmt.Printf("Password for %s: ", email)
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if len(password) == 0 {
			return fmt.Errorf("password cannot be empty")
		}

		if err := appInstance.SignIn(context.Background(), email, string(password)); err != nil {
			return err
		}

		u := appInstance.User()
		fmt.Printf("Signed in as %s\n", u.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.SignOut(context.Background()); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := appInstance.User()
		if u == nil {
			fmt.Println("Not signed in. Run 'gstbill login <email>'.")
			return nil
		}
		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		return nil
	},
}
