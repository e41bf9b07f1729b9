package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/config"
	"github.com/fadna/oms/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "oms",
	Short: "Fadna OMS - Order Management Console",
	Long: `Fadna OMS is the operator console for the order-management backend.

Every command is a thin view over the remote REST API: orders, customers,
products, agents, dashboards and CSV report exports. Sign in once with
'oms login'; the session token is the only state kept on this machine.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadClient builds the API client from config, without a session.
func loadClient() (*config.Config, *api.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, api.NewClient(cfg.API), nil
}

// loadSession restores the stored session and attaches its token to a
// fresh client. Commands that need authentication start here.
func loadSession() (*config.Config, *api.Client, *session.Session, error) {
	cfg, client, err := loadClient()
	if err != nil {
		return nil, nil, nil, err
	}
	sess, err := session.Load(cfg.Session.File)
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil, nil, errors.New("not signed in - run 'oms login' first")
	}
	if errors.Is(err, session.ErrExpired) {
		return nil, nil, nil, errors.New("session expired - run 'oms login' again")
	}
	if err != nil {
		return nil, nil, nil, err
	}
	client.SetToken(sess.Token)
	return cfg, client, sess, nil
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	v, err := prompt(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// confirm requires an explicit yes; destructive commands call it twice.
func confirm(question string) bool {
	answer, err := prompt(question + " (yes/no)")
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "yes") || strings.EqualFold(answer, "y")
}

// promptPassword collects the account password forwarded to the backend
// for re-authorization. The client never validates it locally.
func promptPassword() (string, error) {
	pw, err := prompt("Account password")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password required to authorize this action")
	}
	return pw, nil
}
