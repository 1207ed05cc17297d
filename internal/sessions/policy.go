package sessions

import (
	"github.com/darkroom-cms/darkroom/storage/model"
)

// Allowed decides whether the token's holder may perform an operation
// guarded by the given capability. A superadmin is always permitted. A
// plain admin is permitted when the capability is empty (operations that
// only require being authenticated, such as profile changes) or contained
// in the claims' permission set.
func Allowed(claims *Claims, capability string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == model.RoleSuperadmin {
		return true
	}
	if claims.Role != model.RoleAdmin {
		return false
	}
	if capability == "" {
		return true
	}
	for _, p := range claims.Permissions {
		if p == capability {
			return true
		}
	}
	return false
}

// IsSuperadmin reports whether the claims belong to a superadmin. Used for
// the operations that manage other user accounts.
func IsSuperadmin(claims *Claims) bool {
	return claims != nil && claims.Role == model.RoleSuperadmin
}
