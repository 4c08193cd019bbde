package models

import "gorm.io/gorm"

// Organization roles accepted by the identity gateway
const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleMember = "member"
)

const (
	InvitationStatusInvited = "invited"
)

// Invitation records a pending member invitation. Membership itself is owned
// by the identity gateway; these rows exist so a future messaging integration
// can pick them up. Status transitions (invited -> accepted) happen upstream.
type Invitation struct {
	gorm.Model
	Email          string `gorm:"not null;index" json:"email"`
	Role           string `gorm:"not null;default:'member'" json:"role"`
	OrganizationID string `gorm:"not null;index" json:"organizationId"`
	TeamID         string `json:"teamId,omitempty"`
	Status         string `gorm:"not null;default:'invited'" json:"status"`

	// Best-effort notification bookkeeping, written by the invite worker
	Notified  bool   `gorm:"default:false" json:"-"`
	LastError string `json:"-"`
}
