// Package tenant carries the company partition every per-tenant component is
// scoped to.
package tenant

import (
	"errors"
	"strings"
)

const keyPrefix = "karma"

var ErrMissingCompany = errors.New("tenant: company id is required")

// Context identifies the tenant a component instance belongs to. It is
// created once per session/request from the authenticated claims and passed
// explicitly; nothing reads the tenant from globals.
type Context struct {
	CompanyID string
}

func New(companyID string) (Context, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return Context{}, ErrMissingCompany
	}
	return Context{CompanyID: companyID}, nil
}

// StorageKey is the deterministic key of the tenant's attendance list for a
// person kind, e.g. karma:<company>:attendance:staff.
func (c Context) StorageKey(kind string) string {
	return c.key("attendance", kind)
}

// PresenceKey is the key of the tenant's "currently in" board for a kind.
func (c Context) PresenceKey(kind string) string {
	return c.key("presence", kind)
}

// CacheKey namespaces arbitrary cached data under the tenant.
func (c Context) CacheKey(parts ...string) string {
	return c.key(parts...)
}

func (c Context) key(parts ...string) string {
	all := make([]string, 0, len(parts)+2)
	all = append(all, keyPrefix, c.CompanyID)
	all = append(all, parts...)
	return strings.Join(all, ":")
}
