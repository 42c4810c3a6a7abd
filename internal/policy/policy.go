// Package policy decides who may mutate which record. It does no
// authentication: callers pass an identity they have already established.
package policy

import "strings"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// legacyAdminUsername is the account name that predates the role column.
const legacyAdminUsername = "admin"

// ParseRole maps a stored or requested role string onto a known role.
// Unknown values fall back to RoleUser.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// CanMutate reports whether the requester may edit or delete a resource
// owned by ownerID. Admins may mutate anything; everyone else only what
// they own.
func CanMutate(requesterID uint, requesterRole Role, ownerID uint) bool {
	if requesterRole == RoleAdmin {
		return true
	}
	return requesterID != 0 && requesterID == ownerID
}

// EffectiveRole resolves the role a stored account acts with.
//
// Legacy compatibility: accounts created before roles were stored are
// named literally "admin" and keep admin rights. New accounts rely on the
// stored role alone.
func EffectiveRole(username, storedRole string) Role {
	if ParseRole(storedRole) == RoleAdmin {
		return RoleAdmin
	}
	if isLegacyAdmin(username) {
		return RoleAdmin
	}
	return RoleUser
}

func isLegacyAdmin(username string) bool {
	return username == legacyAdminUsername
}

// IsReservedUsername reports whether a new account may only take this name
// with admin rights. Any spelling of the legacy admin name is reserved.
func IsReservedUsername(username string) bool {
	return strings.EqualFold(strings.TrimSpace(username), legacyAdminUsername)
}
