package models

import "time"

// Showcase is a user-authored post tagged with one skill.
type Showcase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Content     *string   `gorm:"type:text" json:"content"`
	UserID      UserID    `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	SkillID     uint      `gorm:"not null;index" json:"skill_type_id"`
	Skill       *Skill    `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"skill_type,omitempty"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	CreatedAt   time.Time `json:"created_on"`
	UpdatedAt   time.Time `json:"updated_on"`

	Comments []Comment `gorm:"foreignKey:ShowcaseID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	// VoteCount is not persisted; computed at query time
	VoteCount int64 `gorm:"-" json:"vote_count"`
}

// TableName specifies the table name for GORM
func (Showcase) TableName() string {
	return "showcases"
}

// Comment is a first-level comment on a showcase.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	ShowcaseID uint      `gorm:"not null;index" json:"showcase_id"`
	UserID     UserID    `gorm:"not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Replies []ReplyComment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	// VoteCount is not persisted; computed at query time
	VoteCount int64 `gorm:"-" json:"vote_count"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// ReplyComment answers a Comment. Replies are leaves; they cannot be replied to.
type ReplyComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CommentID uint      `gorm:"not null;index" json:"comment_id"`
	UserID    UserID    `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// VoteCount is not persisted; computed at query time
	VoteCount int64 `gorm:"-" json:"vote_count"`
}

// TableName specifies the table name for GORM
func (ReplyComment) TableName() string {
	return "reply_comments"
}
