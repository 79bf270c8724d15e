package models

import "time"

// Skill is an admin-managed tag attached to profiles and showcases.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:300;not null;uniqueIndex" json:"name"`
	UpdatedByID *UserID   `json:"updated_by_id,omitempty"`
	UpdatedBy   *User     `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `json:"created_on"`
	UpdatedAt   time.Time `json:"updated_on"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// Sex is the profile's declared sex.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// BodyType is the profile's declared body type.
type BodyType string

const (
	BodyTypeSlim     BodyType = "Slim"
	BodyTypeAverage  BodyType = "Average"
	BodyTypeAthletic BodyType = "Athletic"
	BodyTypeHeavyset BodyType = "Heavyset"
)

// Profile extends a user one-to-one with biographical details.
// Height is stored as feet plus inches; ProfilePhoto is a URL to an externally hosted image.
type Profile struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       UserID     `gorm:"not null;uniqueIndex" json:"user_id"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Bio          *string    `gorm:"size:500" json:"bio,omitempty"`
	ProfilePhoto *string    `gorm:"size:300" json:"profile_photo,omitempty"`
	Sex          *Sex       `gorm:"type:varchar(1)" json:"sex,omitempty"`
	BodyType     *BodyType  `gorm:"type:varchar(8)" json:"type_of_body,omitempty"`
	Feet         *uint      `json:"feet,omitempty"`
	Inches       *uint      `json:"inches,omitempty"`
	LivesIn      *string    `gorm:"size:50" json:"lives_in,omitempty"`
	Skills       []Skill    `gorm:"many2many:profile_skills;constraint:OnDelete:CASCADE" json:"skills"`
	UpdatedAt    time.Time  `json:"updated_on"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Age returns the completed years between DateOfBirth and now, or nil when unknown.
func (p *Profile) Age(now time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}
