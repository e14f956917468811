// Package auth defines the ownership/role access policy for projects and
// their child resources.  The policy is a pure function over two facts: the
// caller's role and whether the caller owns the project in question.  All
// handlers go through CanAccess; none of them compare role strings directly.
package auth

import "strings"

// Role is the closed set of account roles.  The database stores the
// lower-case string form.
type Role string

const (
	RoleAdmin      Role = "admin"      // full access to every project
	RoleContractor Role = "contractor" // access restricted to owned projects
)

// ParseRole normalizes a stored role string into a Role.  Unknown or empty
// values fall back to contractor, the least-privileged role.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleContractor
}

// CanAccess reports whether a caller with the given role may read or write a
// project (and its files, notes, signatures and timesheets).  Admins may
// access every project; everyone else only projects they own.
//
// Callers must check that the project exists before calling this, so that a
// missing project is reported as not-found rather than forbidden.
func CanAccess(role Role, isOwner bool) bool {
	return role == RoleAdmin || isOwner
}
