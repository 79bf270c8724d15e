package repository

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository defines persistence operations for the skill catalog.
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetByName(ctx context.Context, name string) (*models.Skill, error)
	List(ctx context.Context) ([]models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, name string) (*models.Skill, error)
}

type skillRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db, log: observability.NewRepoLogger("skills")}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	defer observability.TrackQuery("create", "skills")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(skill).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translateError(err, "Skill", skill.Name)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"skill_id": skill.ID, "name": skill.Name})
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, translateError(err, "Skill", id)
	}
	return &skill, nil
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
		return nil, translateError(err, "Skill", name)
	}
	return &skill, nil
}

func (r *skillRepository) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(skill).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return translateError(err, "Skill", skill.Name)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"skill_id": skill.ID})
	return nil
}

// Delete removes the skill. Showcases tagged with it are removed by the
// database cascade.
func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "skills")()

	res := r.db.WithContext(ctx).Delete(&models.Skill{}, id)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return translateError(res.Error, "Skill", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"skill_id": id})
	return nil
}

// Upsert returns the skill named name, creating it when missing.
func (r *skillRepository) Upsert(ctx context.Context, name string) (*models.Skill, error) {
	skill := &models.Skill{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(skill).Error
	if err != nil {
		return nil, translateError(err, "Skill", name)
	}
	return r.GetByName(ctx, name)
}
