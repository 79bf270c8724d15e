package repository

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShowcaseRepository defines persistence operations for showcases.
type ShowcaseRepository interface {
	Create(ctx context.Context, showcase *models.Showcase) error
	GetByID(ctx context.Context, id uint) (*models.Showcase, error)
	GetBySlug(ctx context.Context, slug string) (*models.Showcase, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, showcase *models.Showcase) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID models.UserID, limit, offset int) ([]models.Showcase, error)
	ListBySkill(ctx context.Context, skillID uint, limit, offset int) ([]models.Showcase, error)
}

type showcaseRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewShowcaseRepository returns a new ShowcaseRepository implementation.
func NewShowcaseRepository(db *gorm.DB) ShowcaseRepository {
	return &showcaseRepository{db: db, log: observability.NewRepoLogger("showcases")}
}

func (r *showcaseRepository) Create(ctx context.Context, showcase *models.Showcase) error {
	defer observability.TrackQuery("create", "showcases")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(showcase).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translateError(err, "Showcase", showcase.Slug)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"showcase_id": showcase.ID, "user_id": showcase.UserID})
	return nil
}

func (r *showcaseRepository) withOwner(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Skill")
}

func (r *showcaseRepository) GetByID(ctx context.Context, id uint) (*models.Showcase, error) {
	var showcase models.Showcase
	if err := r.withOwner(ctx).First(&showcase, id).Error; err != nil {
		return nil, translateError(err, "Showcase", id)
	}
	return &showcase, nil
}

func (r *showcaseRepository) GetBySlug(ctx context.Context, slug string) (*models.Showcase, error) {
	var showcase models.Showcase
	if err := r.withOwner(ctx).Where("slug = ?", slug).First(&showcase).Error; err != nil {
		return nil, translateError(err, "Showcase", slug)
	}
	return &showcase, nil
}

func (r *showcaseRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Showcase{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *showcaseRepository) Update(ctx context.Context, showcase *models.Showcase) error {
	defer observability.TrackQuery("update", "showcases")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(showcase).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return translateError(err, "Showcase", showcase.ID)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"showcase_id": showcase.ID})
	return nil
}

// Delete removes the showcase; comments, replies and votes cascade.
func (r *showcaseRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "showcases")()

	res := r.db.WithContext(ctx).Delete(&models.Showcase{}, id)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return translateError(res.Error, "Showcase", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Showcase", id)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"showcase_id": id})
	return nil
}

func (r *showcaseRepository) ListByUser(ctx context.Context, userID models.UserID, limit, offset int) ([]models.Showcase, error) {
	return r.list(ctx, "user_id = ?", userID, limit, offset)
}

func (r *showcaseRepository) ListBySkill(ctx context.Context, skillID uint, limit, offset int) ([]models.Showcase, error) {
	return r.list(ctx, "skill_id = ?", skillID, limit, offset)
}

func (r *showcaseRepository) list(ctx context.Context, cond string, arg interface{}, limit, offset int) ([]models.Showcase, error) {
	defer observability.TrackQuery("list", "showcases")()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	showcases := []models.Showcase{}
	err := r.withOwner(ctx).
		Where(cond, arg).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&showcases).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return showcases, nil
}
