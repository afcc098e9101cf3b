// Package access holds the row-level access rules for every list. At its
// simplest a rule returns a yes or no value depending on the caller's
// session; rules may instead return a filter which limits which rows the
// operation may touch.
package access

import (
	"context"

	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

// Session is the identity and role data attached to an authenticated
// request. A nil *Session means the request is anonymous.
type Session struct {
	UserID string
	Role   *models.Role
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

func IsSignedIn(s *Session) bool {
	return s != nil && s.UserID != ""
}

// Permissions checks whether the session's role carries a named flag -
// yes or no. The table is generated from the permission list so the two
// can never drift apart.
var Permissions = map[string]func(*Session) bool{}

func init() {
	for _, name := range models.PermissionsList {
		name := name
		Permissions[name] = func(s *Session) bool {
			return s != nil && s.Role.Has(name)
		}
	}
}

// Decision is the outcome of an access rule: deny, allow unconditionally,
// or allow restricted to the rows matching a filter.
type Decision struct {
	granted bool
	filter  *Filter
}

func Allow() Decision {
	return Decision{granted: true}
}

func Deny() Decision {
	return Decision{}
}

func AllowWhere(f Filter) Decision {
	return Decision{granted: true, filter: &f}
}

func (d Decision) Granted() bool {
	return d.granted
}

// Restricted returns the row filter, if any. A granted decision with no
// filter allows every row.
func (d Decision) Restricted() (Filter, bool) {
	if d.filter == nil {
		return Filter{}, false
	}
	return *d.filter, true
}

func CanManageProducts(s *Session) Decision {
	if !IsSignedIn(s) {
		return Deny()
	}
	// 1. Do they have the permission of canManageProducts
	if Permissions[models.PermCanManageProducts](s) {
		return Allow()
	}
	// 2. If not, do they own this item?
	return AllowWhere(Filter{UserID: s.UserID})
}

func CanOrder(s *Session) Decision {
	if !IsSignedIn(s) {
		return Deny()
	}
	if Permissions[models.PermCanManageCart](s) {
		return Allow()
	}
	return AllowWhere(Filter{UserID: s.UserID})
}

func CanManageOrderItems(s *Session) Decision {
	if !IsSignedIn(s) {
		return Deny()
	}
	if Permissions[models.PermCanManageCart](s) {
		return Allow()
	}
	// Ownership runs through the parent order.
	return AllowWhere(Filter{OrderUserID: s.UserID})
}

func CanReadProducts(s *Session) Decision {
	// Anonymous visitors still browse the public catalog.
	if !IsSignedIn(s) {
		return AllowWhere(Filter{Status: models.ProductStatusAvailable})
	}
	if Permissions[models.PermCanManageProducts](s) {
		return Allow()
	}
	return AllowWhere(Filter{Or: []Filter{
		{UserID: s.UserID},
		{Status: models.ProductStatusAvailable},
	}})
}

func CanManageUsers(s *Session) Decision {
	if !IsSignedIn(s) {
		return Deny()
	}
	if Permissions[models.PermCanManageUsers](s) {
		return Allow()
	}
	// Otherwise they may only touch themselves.
	return AllowWhere(Filter{ID: s.UserID})
}
