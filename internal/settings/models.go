// Package settings stores the small set of portal-wide values an admin can
// edit at runtime, most importantly the footer caption burned onto rendered
// certificates.
package settings

import "time"

// DefaultFooterCaption is used until an admin saves their own caption.
const DefaultFooterCaption = "Default Admin Text"

// PortalSettings is the single settings row. ID is always 1.
type PortalSettings struct {
	ID            int       `gorm:"primaryKey" json:"-"`
	FooterCaption string    `gorm:"not null" json:"footer_caption"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PortalSettings) TableName() string {
	return "portal_settings"
}

// UpdateRequest is the admin settings edit payload.
type UpdateRequest struct {
	FooterCaption string `json:"footer_caption" binding:"required"`
}
