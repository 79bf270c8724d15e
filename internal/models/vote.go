package models

import "time"

// VoteTarget names one of the three voter sets.
type VoteTarget string

const (
	VoteTargetShowcase VoteTarget = "showcase"
	VoteTargetComment  VoteTarget = "comment"
	VoteTargetReply    VoteTarget = "reply"
)

// Valid reports whether t is a known target.
func (t VoteTarget) Valid() bool {
	switch t {
	case VoteTargetShowcase, VoteTargetComment, VoteTargetReply:
		return true
	}
	return false
}

// ShowcaseVote is one member of a showcase's voter set.
// The composite primary key makes the set membership unique.
type ShowcaseVote struct {
	ShowcaseID uint      `gorm:"primaryKey;autoIncrement:false" json:"showcase_id"`
	UserID     UserID    `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`

	Showcase *Showcase `gorm:"foreignKey:ShowcaseID;constraint:OnDelete:CASCADE" json:"-"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (ShowcaseVote) TableName() string {
	return "showcase_voters"
}

// CommentVote is one member of a comment's voter set.
type CommentVote struct {
	CommentID uint      `gorm:"primaryKey;autoIncrement:false" json:"comment_id"`
	UserID    UserID    `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (CommentVote) TableName() string {
	return "comment_voters"
}

// ReplyVote is one member of a reply's voter set.
type ReplyVote struct {
	ReplyID   uint      `gorm:"primaryKey;autoIncrement:false" json:"reply_id"`
	UserID    UserID    `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Reply *ReplyComment `gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (ReplyVote) TableName() string {
	return "reply_voters"
}
