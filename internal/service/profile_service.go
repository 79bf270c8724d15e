package service

import (
	"context"
	"time"

	"creativeapp/internal/models"
	"creativeapp/internal/repository"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpdateProfileInput is a partial update: nil fields are left unchanged.
type UpdateProfileInput struct {
	DateOfBirth  *time.Time
	Bio          *string
	ProfilePhoto *string
	Sex          *models.Sex
	BodyType     *models.BodyType
	Feet         *uint
	Inches       *uint
	LivesIn      *string
}

// Validate checks lengths and enumerations. now bounds the date of birth.
func (in UpdateProfileInput) Validate(now time.Time) error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.DateOfBirth, ozzo.Max(now).Error("date of birth cannot be in the future")),
		ozzo.Field(&in.Bio, ozzo.RuneLength(0, 500)),
		ozzo.Field(&in.ProfilePhoto, ozzo.RuneLength(0, 300), is.URL),
		ozzo.Field(&in.Sex, ozzo.In(models.SexMale, models.SexFemale)),
		ozzo.Field(&in.BodyType, ozzo.In(
			models.BodyTypeSlim, models.BodyTypeAverage, models.BodyTypeAthletic, models.BodyTypeHeavyset,
		)),
		ozzo.Field(&in.Inches, ozzo.Max(uint(11))),
		ozzo.Field(&in.LivesIn, ozzo.RuneLength(0, 50)),
	)
}

func (in UpdateProfileInput) apply(p *models.Profile) {
	if in.DateOfBirth != nil {
		dob := *in.DateOfBirth
		p.DateOfBirth = &dob
	}
	if in.Bio != nil {
		p.Bio = in.Bio
	}
	if in.ProfilePhoto != nil {
		p.ProfilePhoto = in.ProfilePhoto
	}
	if in.Sex != nil {
		p.Sex = in.Sex
	}
	if in.BodyType != nil {
		p.BodyType = in.BodyType
	}
	if in.Feet != nil {
		p.Feet = in.Feet
	}
	if in.Inches != nil {
		p.Inches = in.Inches
	}
	if in.LivesIn != nil {
		p.LivesIn = in.LivesIn
	}
}

// ProfileDetails is a profile with its owner and derived age.
type ProfileDetails struct {
	User    *models.User
	Profile *models.Profile
	Age     *int
}

// ProfileService provides profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	skillRepo   repository.SkillRepository
	now         func() time.Time
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, skillRepo repository.SkillRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo, skillRepo: skillRepo, now: time.Now}
}

// GetProfile returns the profile of the user identified by slug.
func (s *ProfileService) GetProfile(ctx context.Context, slug string) (*ProfileDetails, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileDetails{User: user, Profile: profile, Age: profile.Age(s.now())}, nil
}

// UpdateProfile applies a partial update to slug's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, slug string, in UpdateProfileInput) (*models.Profile, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, invalid(err)
	}
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	in.apply(profile)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetSkills replaces slug's skills. Duplicate ids are ignored; an unknown
// id fails the whole call.
func (s *ProfileService) SetSkills(ctx context.Context, slug string, skillIDs []uint) (*models.Profile, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(skillIDs))
	skills := make([]models.Skill, 0, len(skillIDs))
	for _, id := range skillIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		skill, err := s.skillRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *skill)
	}

	if err := s.profileRepo.ReplaceSkills(ctx, profile, skills); err != nil {
		return nil, err
	}
	return profile, nil
}
