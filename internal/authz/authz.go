// Package authz holds the authorization policy shared by the client and the
// server. The policy is a pure mapping from role to permission; denial is
// enforced both at the route level and at the affordance level, so callers
// should simply not offer an action the policy denies.
package authz

import "github.com/dmitrijs2005/phonebook/internal/models"

// CanMutate reports whether the role may create, edit or delete contacts,
// companies and notices.
func CanMutate(r models.Role) bool {
	return r == models.RoleAdmin || r == models.RoleEditor
}

// CanManageUsers reports whether the role may see the user management view
// and mutate user accounts.
func CanManageUsers(r models.Role) bool {
	return r == models.RoleAdmin
}
