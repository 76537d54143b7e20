package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table. IDs are UUIDv7 assigned by the repository.
type IdentityModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:identities_email_key;not null"`
	DisplayName string    `gorm:"type:varchar(100);not null"`
	SecretHash  string    `gorm:"type:varchar(255);not null"`
	Salt        string    `gorm:"type:varchar(64);not null"`
	ExternalRef string    `gorm:"type:varchar(64);uniqueIndex:identities_external_ref_key;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
