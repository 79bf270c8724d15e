package service

import (
	"context"
	"strings"

	"creativeapp/internal/models"
	"creativeapp/internal/repository"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// SkillService manages the skill catalog.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

func normalizeSkillName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := ozzo.Validate(name,
		ozzo.Required.Error("skill name is required"),
		ozzo.RuneLength(1, 300),
	)
	return name, invalid(err)
}

// CreateSkill adds a skill. by records the editing user and may be nil.
func (s *SkillService) CreateSkill(ctx context.Context, name string, by *models.UserID) (*models.Skill, error) {
	name, err := normalizeSkillName(name)
	if err != nil {
		return nil, err
	}
	skill := &models.Skill{Name: name, UpdatedByID: by}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// RenameSkill changes a skill's name.
func (s *SkillService) RenameSkill(ctx context.Context, id uint, name string, by *models.UserID) (*models.Skill, error) {
	name, err := normalizeSkillName(name)
	if err != nil {
		return nil, err
	}
	skill, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	skill.Name = name
	skill.UpdatedByID = by
	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// ListSkills returns the catalog ordered by name.
func (s *SkillService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.skillRepo.List(ctx)
}

// DeleteSkill removes a skill together with every showcase tagged with it.
func (s *SkillService) DeleteSkill(ctx context.Context, id uint) error {
	return s.skillRepo.Delete(ctx, id)
}
