package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the OMS backend",
	Long: `Sign in with your email or username. On success the session token is
stored in the session file and attached to every later command.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email or username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	if loginEmail == "" {
		if loginEmail, err = prompt("Email or username"); err != nil {
			return err
		}
	}
	if loginPassword == "" {
		if loginPassword, err = prompt("Password"); err != nil {
			return err
		}
	}

	resp, err := client.Login(cmd.Context(), loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess, err := session.New(resp.Token, resp.User)
	if err != nil {
		return err
	}
	if err := sess.Save(cfg.Session.File); err != nil {
		return err
	}

	fmt.Printf("✅ Signed in as %s (%s)\n", sess.User.Name, sess.User.Role)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadClient()
		if err != nil {
			return err
		}
		if err := session.Clear(cfg.Session.File); err != nil {
			return err
		}
		fmt.Println("👋 Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
