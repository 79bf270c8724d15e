package repository

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID models.UserID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	ReplaceSkills(ctx context.Context, profile *models.Profile, skills []models.Skill) error
}

type profileRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db, log: observability.NewRepoLogger("profiles")}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID models.UserID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skills.name ASC")
		}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, translateError(err, "Profile", userID)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackQuery("update", "profiles")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return translateError(err, "Profile", profile.UserID)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"profile_id": profile.ID})
	return nil
}

// ReplaceSkills sets the profile's skill list to exactly skills.
func (r *profileRepository) ReplaceSkills(ctx context.Context, profile *models.Profile, skills []models.Skill) error {
	defer observability.TrackQuery("update", "profile_skills")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(skills) == 0 {
			return tx.Model(profile).Association("Skills").Clear()
		}
		return tx.Model(profile).Association("Skills").Replace(skills)
	})
	if err != nil {
		r.log.LogError(ctx, err, "replace_skills")
		return translateError(err, "Profile", profile.UserID)
	}
	profile.Skills = skills
	r.log.LogUpdate(ctx, map[string]interface{}{"profile_id": profile.ID, "skills": len(skills)})
	return nil
}
