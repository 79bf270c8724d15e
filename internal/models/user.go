// Package models contains data structures for the application's domain models.
package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserID identifies a user account. Every entity that points at a user uses it.
type UserID uint

func (id UserID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// User is an account. Email is the login key, Slug the public identifier.
type User struct {
	ID          UserID     `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FullName    string     `gorm:"size:250" json:"fullname"`
	Password    string     `gorm:"size:128;not null" json:"-"`
	IsStaff     bool       `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// SetPassword stores a bcrypt hash of raw.
func (u *User) SetPassword(raw string, cost int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

func (u *User) String() string {
	return u.Email
}
