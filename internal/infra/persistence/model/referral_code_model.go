package model

import (
	"time"

	"github.com/google/uuid"
)

// ReferralCodeModel mirrors the 'referral_codes' table, the admin-managed
// registry of campaign codes.
type ReferralCodeModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code       string     `gorm:"type:varchar(16);unique;not null"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsActive   bool       `gorm:"not null;default:true"`
	UsageCount int        `gorm:"not null;default:0"`
	MaxUsage   *int
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ReferralCodeModel) TableName() string {
	return "referral_codes"
}
