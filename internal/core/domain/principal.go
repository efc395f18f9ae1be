package domain

import "slices"

// Principal is the authenticated caller of a single request.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

func (p Principal) IsAdmin() bool {
	return slices.Contains(p.Roles, RoleAdmin)
}

// CanManage reports whether p may read, change or delete results owned by ownerID.
func (p Principal) CanManage(ownerID int64) bool {
	return p.IsAdmin() || (p.UserID != 0 && p.UserID == ownerID)
}
