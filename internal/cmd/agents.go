package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/models"
)

var (
	agentName     string
	agentUsername string
	agentEmail    string
	agentPassword string
	agentPhone    string
	agentAddress  string
	agentRole     string
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage agent and admin accounts",
	RunE:  runAgentsList,
}

func init() {
	rootCmd.AddCommand(agentsCmd)

	for _, sub := range []*cobra.Command{agentsCreateCmd, agentsUpdateCmd} {
		sub.Flags().StringVar(&agentName, "name", "", "Full name")
		sub.Flags().StringVar(&agentUsername, "username", "", "Login username")
		sub.Flags().StringVar(&agentEmail, "email", "", "Email address")
		sub.Flags().StringVar(&agentPassword, "password", "", "Password (blank on update keeps current)")
		sub.Flags().StringVar(&agentPhone, "phone", "", "Phone number")
		sub.Flags().StringVar(&agentAddress, "address", "", "Address")
		sub.Flags().StringVar(&agentRole, "role", models.RoleAgent, "Account role (Agent or Admin)")
		agentsCmd.AddCommand(sub)
	}
	agentsCmd.AddCommand(agentsDeleteCmd)
}

func requireUserManager() (*api.Client, error) {
	_, client, sess, err := loadSession()
	if err != nil {
		return nil, err
	}
	if !sess.Capabilities().CanManageUsers {
		return nil, fmt.Errorf("only %s can manage accounts", models.RoleSuperAdmin)
	}
	return client, nil
}

// The roster is visible to admins; account mutations stay super-admin only.
func runAgentsList(cmd *cobra.Command, args []string) error {
	_, client, sess, err := loadSession()
	if err != nil {
		return err
	}
	if !sess.Capabilities().CanManageAgents {
		return fmt.Errorf("your role cannot view the agent roster")
	}

	agents, err := client.Agents(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch agents: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tUsername\tEmail\tRole\tPhone")
	for _, a := range agents {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Username, a.Email, a.Role, dash(a.Phone))
	}
	return w.Flush()
}

func agentPayload() (api.UserPayload, error) {
	if agentRole != models.RoleAgent && agentRole != models.RoleAdmin {
		return api.UserPayload{}, fmt.Errorf("role must be %s or %s", models.RoleAgent, models.RoleAdmin)
	}
	return api.UserPayload{
		Name:     agentName,
		Username: agentUsername,
		Email:    agentEmail,
		Password: agentPassword,
		Phone:    agentPhone,
		Address:  agentAddress,
		Role:     agentRole,
	}, nil
}

var agentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an agent or admin account (super admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := requireUserManager()
		if err != nil {
			return err
		}
		payload, err := agentPayload()
		if err != nil {
			return err
		}
		if payload.Name == "" || payload.Username == "" || payload.Password == "" {
			return fmt.Errorf("--name, --username and --password are required")
		}
		if err := client.RegisterUser(cmd.Context(), payload); err != nil {
			return fmt.Errorf("failed to register account: %w", err)
		}
		fmt.Printf("✅ %s account %q created\n", payload.Role, payload.Username)
		return nil
	},
}

var agentsUpdateCmd = &cobra.Command{
	Use:   "update <agent-id>",
	Short: "Update an account (super admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := requireUserManager()
		if err != nil {
			return err
		}
		payload, err := agentPayload()
		if err != nil {
			return err
		}
		if err := client.UpdateUser(cmd.Context(), args[0], payload); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		fmt.Println("✅ Account updated")
		return nil
	},
}

var agentsDeleteCmd = &cobra.Command{
	Use:   "delete <agent-id>",
	Short: "Delete an account (super admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := requireUserManager()
		if err != nil {
			return err
		}
		if !confirm("Are you sure you want to delete this account?") {
			return nil
		}
		if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		fmt.Println("🗑️  Account deleted")
		return nil
	},
}
