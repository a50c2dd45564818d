package auth

import (
	"net/http"
	"strings"
)

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"exam:view",
		"submission:create",
		"submission:view-own",
	},
	"admin": {
		"*", // everything
	},
}

// Require enforces a single permission for the authenticated role.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ClaimsFromContext(r.Context())
			if c == nil || !hasPerm(c.Role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny enforces that the role has at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ClaimsFromContext(r.Context())
			if c == nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			for _, p := range perms {
				if hasPerm(c.Role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

func hasPerm(role, perm string) bool {
	for _, p := range RolePermissions[role] {
		if p == "*" || p == perm {
			return true
		}
		if strings.HasSuffix(p, "*") && strings.HasPrefix(perm, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}
