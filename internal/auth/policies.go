package auth

import (
	"fmt"

	"kasrah-cms/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can read everything the public site exposes, plus
	// the login endpoint. The 'admin' role inherits from 'anonymous' and
	// additionally owns the whole /api/admin surface.
	policies := [][]string{
		{"anonymous", "/", "GET"},
		{"anonymous", "/articles/*", "GET"},
		{"anonymous", "/pages/*", "GET"},
		{"anonymous", "/sitemap.xml", "GET"},
		{"anonymous", "/robots.txt", "GET"},
		{"anonymous", "/api/articles", "GET"},
		{"anonymous", "/api/articles/*", "GET"},
		{"anonymous", "/api/settings", "GET"},
		{"anonymous", "/api/ads/active", "GET"},
		{"anonymous", "/api/sports/*", "GET"},
		{"anonymous", "/api/auth/login", "POST"},
		{"anonymous", "/api/auth/logout", "POST"},
		{"anonymous", "/api/auth/status", "GET"},

		{"admin", "/api/admin/*", "GET"},
		{"admin", "/api/admin/*", "POST"},
		{"admin", "/api/admin/*", "PUT"},
		{"admin", "/api/admin/*", "DELETE"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Granting the 'admin' role all permissions of the 'anonymous' role.
	if has, _ := e.HasRoleForUser("admin", "anonymous"); !has {
		if _, err := e.AddRoleForUser("admin", "anonymous"); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
