package database

import "creativeapp/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Skill{},
		&models.Profile{},
		&models.FollowLog{},
		&models.Showcase{},
		&models.Comment{},
		&models.ReplyComment{},
		&models.ShowcaseVote{},
		&models.CommentVote{},
		&models.ReplyVote{},
	}
}
