package certificates

import (
	"time"
)

// DefaultAccessBy is the issuing admin identity stamped on every record.
const DefaultAccessBy = "Admin"

// WebsiteOptions are the preset website values offered by the admin form.
// Any other non-empty value is accepted as a free-form override.
var WebsiteOptions = []string{"example.com", "mysite.org"}

// Certificate is one issued certificate's stored metadata. The record store
// owns it; the rendering pipeline only ever reads it.
type Certificate struct {
	ID                int        `json:"id" gorm:"primaryKey"`
	SerialNo          string     `json:"serial_no" gorm:"index;not null"`
	Name              string     `json:"name" gorm:"not null"`
	CourseName        string     `json:"course_name" gorm:"not null"`
	City              string     `json:"city" gorm:"not null"`
	Country           string     `json:"country" gorm:"not null"`
	CertificateNo     string     `json:"certificate_no" gorm:"uniqueIndex;not null"`
	DateOfCertificate time.Time  `json:"date_of_certificate" gorm:"not null"`
	Photo             *string    `json:"photo,omitempty"`
	AccessBy          string     `json:"access_by" gorm:"not null"`
	Website           string     `json:"website" gorm:"not null"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PhotoRef returns the photo reference or "" when no photo is attached.
func (c *Certificate) PhotoRef() string {
	if c.Photo == nil {
		return ""
	}
	return *c.Photo
}

// CreateRequest carries the fields of a manual certificate entry. The photo
// is uploaded separately as a multipart file.
type CreateRequest struct {
	SerialNo          string `form:"serial_no" json:"serial_no" binding:"required"`
	Name              string `form:"name" json:"name" binding:"required"`
	CourseName        string `form:"course_name" json:"course_name" binding:"required"`
	City              string `form:"city" json:"city" binding:"required"`
	Country           string `form:"country" json:"country" binding:"required"`
	CertificateNo     string `form:"certificate_no" json:"certificate_no" binding:"required"`
	DateOfCertificate string `form:"date_of_certificate" json:"date_of_certificate" binding:"required"`
	Website           string `form:"website" json:"website" binding:"required"`
}

// UpdateRequest mirrors CreateRequest for in-place edits. A new photo, when
// uploaded, replaces the stored reference; otherwise the old one is kept.
type UpdateRequest = CreateRequest

// VerificationResponse is the public lookup result for a certificate number.
type VerificationResponse struct {
	Verified          bool   `json:"verified"`
	SerialNo          string `json:"serial_no"`
	Name              string `json:"name"`
	CourseName        string `json:"course_name"`
	City              string `json:"city"`
	Country           string `json:"country"`
	CertificateNo     string `json:"certificate_no"`
	DateOfCertificate string `json:"date_of_certificate"`
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
