// Package access decides which pages and actions a role may reach. The rules
// are data: a Policy value, optionally loaded from a file.
package access

import (
	"fmt"
	"sort"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"

	"github.com/spf13/viper"
)

// Page identifiers.
const (
	PageDashboard      = "dashboard"
	PagePatients       = "patients"
	PageDoctors        = "doctors"
	PageAppointments   = "appointments"
	PageMedicalRecords = "medical-records"
	PagePrescriptions  = "prescriptions"
	PageBilling        = "billing"
	PageStaff          = "staff"
	PageChatbot        = "chatbot"
	PageAdmin          = "admin"
)

// Policy is the role → capability table.
type Policy struct {
	// Pages lists the roles allowed on each page.
	Pages map[string][]string `mapstructure:"pages"`
	// Hierarchy ranks roles; a higher rank satisfies any lower minimum.
	Hierarchy map[string]int `mapstructure:"hierarchy"`
	// Actions names the minimum role for each action.
	Actions map[string]string `mapstructure:"actions"`
}

// DefaultPolicy mirrors the navigation each role has always had.
func DefaultPolicy() Policy {
	all := []string{"admin", "doctor", "staff", "patient"}
	return Policy{
		Pages: map[string][]string{
			PageDashboard:      all,
			PageAppointments:   all,
			PagePatients:       {"admin", "doctor", "staff"},
			PageDoctors:        {"admin", "staff"},
			PageMedicalRecords: {"admin", "doctor"},
			PagePrescriptions:  {"admin", "doctor"},
			PageBilling:        {"admin", "staff"},
			PageStaff:          {"admin", "staff"},
			PageChatbot:        {"patient"},
			PageAdmin:          {"admin"},
		},
		Hierarchy: map[string]int{
			"receptionist": 1,
			"staff":        1,
			"nurse":        2,
			"doctor":       3,
			"admin":        4,
		},
		Actions: map[string]string{
			"patients.write":        "staff",
			"doctors.write":         "admin",
			"staff.write":           "admin",
			"medical-records.write": "doctor",
			"prescriptions.write":   "doctor",
			"billing.write":         "staff",
			"billing.export":        "staff",
		},
	}
}

// LoadPolicy reads a YAML or JSON policy file. Sections missing from the
// file keep their defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	// Action names contain dots, so viper must not treat "." as nesting.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Policy{}, fmt.Errorf("read access policy: %w", err)
	}
	var fromFile Policy
	if err := v.Unmarshal(&fromFile); err != nil {
		return Policy{}, fmt.Errorf("decode access policy: %w", err)
	}
	if fromFile.Pages != nil {
		policy.Pages = fromFile.Pages
	}
	if fromFile.Hierarchy != nil {
		policy.Hierarchy = fromFile.Hierarchy
	}
	if fromFile.Actions != nil {
		policy.Actions = fromFile.Actions
	}
	return policy, nil
}

// Gate answers access questions against a Policy.
type Gate struct {
	pages     map[string]map[models.Role]bool
	hierarchy map[models.Role]int
	actions   map[string]models.Role
}

func NewGate(p Policy) *Gate {
	g := &Gate{
		pages:     make(map[string]map[models.Role]bool, len(p.Pages)),
		hierarchy: make(map[models.Role]int, len(p.Hierarchy)),
		actions:   make(map[string]models.Role, len(p.Actions)),
	}
	for page, roles := range p.Pages {
		set := make(map[models.Role]bool, len(roles))
		for _, r := range roles {
			set[models.Role(r)] = true
		}
		g.pages[page] = set
	}
	for r, rank := range p.Hierarchy {
		g.hierarchy[models.Role(r)] = rank
	}
	for action, r := range p.Actions {
		g.actions[action] = models.Role(r)
	}
	return g
}

// AllowedPages returns the pages role may open, sorted.
func (g *Gate) AllowedPages(role models.Role) []string {
	pages := []string{}
	for page, roles := range g.pages {
		if roles[role] {
			pages = append(pages, page)
		}
	}
	sort.Strings(pages)
	return pages
}

// CanAccess reports whether role may open page. Unknown pages are denied.
func (g *Gate) CanAccess(role models.Role, page string) bool {
	return g.pages[page][role]
}

// RequirePage returns a Forbidden error unless the session may open page.
func (g *Gate) RequirePage(s *session.Session, page string) error {
	if s == nil {
		return apperr.Unauthenticated("Authentication required")
	}
	if !g.CanAccess(s.Role, page) {
		return apperr.Forbidden("You do not have access to this page")
	}
	return nil
}

// RequireRole compares ranks in the hierarchy. Roles without a rank, on
// either side, never pass.
func (g *Gate) RequireRole(s *session.Session, minimum models.Role) error {
	if s == nil {
		return apperr.Unauthenticated("Authentication required")
	}
	have, ok := g.hierarchy[s.Role]
	need, known := g.hierarchy[minimum]
	if !ok || !known || have < need {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// RequireAction checks the minimum role configured for action. Actions with
// no configured minimum are allowed.
func (g *Gate) RequireAction(s *session.Session, action string) error {
	minimum, ok := g.actions[action]
	if !ok {
		if s == nil {
			return apperr.Unauthenticated("Authentication required")
		}
		return nil
	}
	return g.RequireRole(s, minimum)
}
