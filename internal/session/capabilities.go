package session

import "github.com/fadna/oms/internal/models"

// Capabilities is the role's privilege set, computed once per session
// instead of comparing role strings at every call site.
type Capabilities struct {
	CanManageUsers     bool // create/edit/delete Agent and Admin accounts
	CanManageAgents    bool // view the agent/admin roster
	CanManageProducts  bool
	CanDispatch        bool // transition order status directly
	CanImport          bool // CSV bulk import
	CanExportAll       bool // side-effecting export across all agents
	CanSeeHistory      bool // export/download log
	CanDeleteOrders    bool // password re-auth still happens server-side
	CanDeleteCustomers bool
	CanReport          bool // at minimum the read-only personal report
}

// CapabilitiesFor maps a backend role to its capability set. Unknown roles
// get the empty set.
func CapabilitiesFor(role string) Capabilities {
	switch role {
	case models.RoleSuperAdmin:
		return Capabilities{
			CanManageUsers:     true,
			CanManageAgents:    true,
			CanManageProducts:  true,
			CanDispatch:        true,
			CanImport:          true,
			CanExportAll:       true,
			CanSeeHistory:      true,
			CanDeleteOrders:    true,
			CanDeleteCustomers: true,
			CanReport:          true,
		}
	case models.RoleAdmin:
		return Capabilities{
			CanManageAgents: true,
			CanDispatch:     true,
			CanImport:       true,
			CanExportAll:    true,
			CanSeeHistory:   true,
			CanReport:       true,
		}
	case models.RoleAgent:
		return Capabilities{
			CanReport: true,
		}
	default:
		return Capabilities{}
	}
}

// Capabilities returns the privilege set for the session user.
func (s *Session) Capabilities() Capabilities {
	return CapabilitiesFor(s.User.Role)
}
