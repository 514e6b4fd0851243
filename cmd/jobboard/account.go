package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// passwordFromFlags returns --password or prompts for it.
func passwordFromFlags(cmd *cobra.Command) (string, error) {
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		return password, nil
	}
	return readSecret("Password: ")
}

var signupCmd = &cobra.Command{
	Use:   "signup EMAIL",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		a, err := newApp(cmd, "signup")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.State().Signup(args[0], password)
		if err != nil {
			a.Fail()
			return err
		}
		fmt.Printf("Account created successfully! Welcome, %s!\n", user.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		a, err := newApp(cmd, "login")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.State().Login(args[0], password); err != nil {
			a.Fail()
			return err
		}
		fmt.Printf("Welcome back, %s!\n", a.State().DisplayName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.State().CurrentUser(); !ok {
			fmt.Println("Not logged in.")
			return nil
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Are you sure you want to logout?") {
			return nil
		}
		if err := a.State().Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out successfully")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "whoami")
		if err != nil {
			return err
		}
		defer a.Close()

		email, ok := a.State().CurrentUser()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", a.State().DisplayName(), email)
		return nil
	},
}

func addPasswordFlag(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
}

func init() {
	rootCmd.AddCommand(signupCmd)
	addPasswordFlag(signupCmd)
	rootCmd.AddCommand(loginCmd)
	addPasswordFlag(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(whoamiCmd)
}
