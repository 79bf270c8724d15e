package repository

import (
	"context"
	"fmt"
	"testing"

	"creativeapp/internal/database"
	"creativeapp/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB returns a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, slug string) *models.User {
	t.Helper()
	user := &models.User{Email: slug + "@example.com", Password: "hash", Slug: slug, FullName: slug}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createSkill(t *testing.T, db *gorm.DB, name string) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name}
	require.NoError(t, NewSkillRepository(db).Create(context.Background(), skill))
	return skill
}

func createShowcase(t *testing.T, db *gorm.DB, owner *models.User, skill *models.Skill, slug string) *models.Showcase {
	t.Helper()
	showcase := &models.Showcase{Title: slug, UserID: owner.ID, SkillID: skill.ID, Slug: slug}
	require.NoError(t, NewShowcaseRepository(db).Create(context.Background(), showcase))
	return showcase
}
