package entity

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. The password hash never leaves the
// persistence and usecase layers; handlers expose PublicUser projections only.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	State        string
	Pincode      string
	Role         Role
	IsActive     bool
	Flagged      bool
	// ReferralCode is this user's own code, unique and assigned at creation.
	ReferralCode string
	// ReferredBy stores the referrer's ReferralCode (not their id); empty for
	// roots of the referral forest.
	ReferredBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PublicUser is the projection returned by the API. It deliberately omits the
// password hash and moderation flags not meant for the account owner.
type PublicUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Pincode      string    `json:"pincode,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	ReferralCode string    `json:"referralCode"`
	ReferredBy   string    `json:"referredBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public converts the user to its API projection.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Address:      u.Address,
		City:         u.City,
		State:        u.State,
		Pincode:      u.Pincode,
		Role:         u.Role,
		IsActive:     u.IsActive,
		ReferralCode: u.ReferralCode,
		ReferredBy:   u.ReferredBy,
		CreatedAt:    u.CreatedAt,
	}
}

const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// referralCodeLength matches the 9-character uppercase codes users share.
const referralCodeLength = 9

// NewReferralCode generates a random uppercase alphanumeric referral code.
func NewReferralCode() string {
	buf := make([]byte, referralCodeLength)
	max := big.NewInt(int64(len(referralCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		buf[i] = referralCodeAlphabet[n.Int64()]
	}

	return string(buf)
}
