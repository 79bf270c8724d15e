package models

import "time"

// FollowStatus represents the state of a follow edge.
type FollowStatus string

const (
	// FollowStatusFollowing indicates the actor currently follows the target.
	FollowStatusFollowing FollowStatus = "following"
	// FollowStatusUnfollowed indicates the actor stopped following the target.
	FollowStatusUnfollowed FollowStatus = "unfollowed"
	// FollowStatusBlocked indicates the target blocked the actor.
	FollowStatusBlocked FollowStatus = "blocked"
)

// Valid reports whether s is one of the known statuses.
func (s FollowStatus) Valid() bool {
	switch s {
	case FollowStatusFollowing, FollowStatusUnfollowed, FollowStatusBlocked:
		return true
	}
	return false
}

// FollowLog is a directed follow edge: FollowedBy follows User.
// There is at most one row per (user_id, followed_by_id); unfollowing is a
// status change and the row is kept.
type FollowLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       UserID       `gorm:"not null;uniqueIndex:idx_follow_logs_pair;index:idx_follow_logs_user_status,priority:1" json:"user_id"`
	FollowedByID UserID       `gorm:"not null;uniqueIndex:idx_follow_logs_pair;index:idx_follow_logs_actor_status,priority:1" json:"followed_by_id"`
	Status       FollowStatus `gorm:"type:varchar(30);not null;default:'following';index:idx_follow_logs_user_status,priority:2;index:idx_follow_logs_actor_status,priority:2" json:"status"`
	FollowedOn   time.Time    `gorm:"autoCreateTime" json:"followed_on"`
	UpdatedOn    time.Time    `gorm:"autoUpdateTime" json:"updated_on"`
	UnfollowedOn *time.Time   `json:"unfollowed_on,omitempty"`
	BlockedOn    *time.Time   `json:"blocked_on,omitempty"`

	// Relationships
	User       *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FollowedBy *User `gorm:"foreignKey:FollowedByID;constraint:OnDelete:CASCADE" json:"followed_by,omitempty"`
}

// TableName specifies the table name for GORM
func (FollowLog) TableName() string {
	return "follow_logs"
}

// MarkFollowing moves the edge back to following.
func (f *FollowLog) MarkFollowing() {
	f.Status = FollowStatusFollowing
}

// MarkUnfollowed moves the edge to unfollowed and stamps the time.
func (f *FollowLog) MarkUnfollowed(now time.Time) {
	f.Status = FollowStatusUnfollowed
	f.UnfollowedOn = &now
}

// MarkBlocked moves the edge to blocked and stamps the time.
func (f *FollowLog) MarkBlocked(now time.Time) {
	f.Status = FollowStatusBlocked
	f.BlockedOn = &now
}

// Transition applies status to the edge, stamping the matching timestamp.
func (f *FollowLog) Transition(status FollowStatus, now time.Time) {
	switch status {
	case FollowStatusUnfollowed:
		f.MarkUnfollowed(now)
	case FollowStatusBlocked:
		f.MarkBlocked(now)
	default:
		f.MarkFollowing()
	}
}
