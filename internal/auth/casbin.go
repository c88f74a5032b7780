package auth

import (
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// InitCasbin defines the RBAC model and initializes the enforcer with GORM adapter
func InitCasbin(db *gorm.DB) (*casbin.Enforcer, error) {
	// 1. Initialize GORM adapter (creates casbin_rule table)
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	// 2. Define RBAC Model in string format
	// r = request (who, what, how)
	// p = policy (who, what, how)
	// g = grouping (role hierarchy)
	// m = matcher (how to match request to policy)
	text := `
		[request_definition]
		r = sub, obj, act

		[policy_definition]
		p = sub, obj, act

		[role_definition]
		g = _, _

		[policy_effect]
		e = some(where (p.eft == allow))

		[matchers]
		m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
	`
	// keyMatch2 supports URL parameters like /api/users/:id/approve

	m, err := model.NewModelFromString(text)
	if err != nil {
		return nil, err
	}

	// 3. Create Enforcer
	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	// 4. Load policy from database
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	// 5. Initialize default role policies if empty
	policies, _ := enforcer.GetPolicy()
	if len(policies) == 0 {
		log.Println("Casbin: No policies found, initializing default role policies...")
		if err := seedDefaultPolicies(enforcer); err != nil {
			log.Printf("Failed to seed default policies: %v", err)
		}
	}

	log.Println("Casbin initialized successfully")
	return enforcer, nil
}

// seedDefaultPolicies grants each built-in role its slice of the API.
// The manager role doubles as the admin surface.
func seedDefaultPolicies(enforcer *casbin.Enforcer) error {
	defaults := [][]string{
		// manager: everything under /api
		{"manager", "/api/*", "(GET)|(POST)|(PUT)|(DELETE)"},

		// holder: registry reads, transfers, tax payments, own profile
		{"holder", "/api/properties", "GET"},
		{"holder", "/api/properties/search", "GET"},
		{"holder", "/api/holders/:name/land-area", "GET"},
		{"holder", "/api/transfers", "POST"},
		{"holder", "/api/payments", "POST"},
		{"holder", "/api/users/name/:name", "GET"},

		// employee: assigned work
		{"employee", "/api/tasks", "GET"},
		{"employee", "/api/properties", "GET"},
		{"employee", "/api/properties/search", "GET"},

		// author: signup review queue
		{"author", "/api/notifications", "(GET)|(POST)"},
		{"author", "/api/notifications/:id", "PUT"},
		{"author", "/api/notifications/rejection-email", "POST"},
	}

	for _, p := range defaults {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return enforcer.SavePolicy()
}
