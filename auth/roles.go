package auth

import "strings"

// Role tags granted by the backend. A user may hold several, stored as one
// comma-separated string.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClerk   = "clerk"
)

// DefaultAllowedRoles matches the frontend default for protected pages.
var DefaultAllowedRoles = []string{RoleManager, RoleAdmin}

// ManagerRoles are the roles allowed to mutate stock and act on suggestions.
var ManagerRoles = []string{RoleManager, RoleAdmin}

// SplitRoles parses the backend's comma-separated role string
// (e.g. "admin,manager") into individual role tags.
func SplitRoles(roles string) []string {
	if roles == "" {
		return nil
	}
	parts := strings.Split(roles, ",")
	split := make([]string, 0, len(parts))
	for _, part := range parts {
		if role := strings.TrimSpace(part); role != "" {
			split = append(split, role)
		}
	}
	return split
}

// HasAnyRole reports whether the role string holds at least one of the
// allowed roles.
func HasAnyRole(roles string, allowed []string) bool {
	held := SplitRoles(roles)
	for _, want := range allowed {
		for _, role := range held {
			if role == want {
				return true
			}
		}
	}
	return false
}

// PrimaryRole returns the first held role, defaulting to clerk. Used for the
// welcome line only.
func PrimaryRole(roles string) string {
	if split := SplitRoles(roles); len(split) > 0 {
		return split[0]
	}
	return RoleClerk
}

// IsManager reports whether the role string carries manager or admin.
func IsManager(roles string) bool {
	return HasAnyRole(roles, ManagerRoles)
}
