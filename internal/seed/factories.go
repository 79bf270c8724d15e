// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creativeapp/internal/models"
	"creativeapp/internal/repository"
	"creativeapp/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password given to every seeded account.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	faker     *gofakeit.Faker
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	showcases repository.ShowcaseRepository
	comments  repository.CommentRepository
	follows   repository.FollowRepository
	votes     repository.VoteRepository

	passwordHash string
}

// NewFactory creates a Factory bound to db. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64) (*Factory, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Factory{
		faker:        gofakeit.New(seed),
		users:        repository.NewUserRepository(db),
		profiles:     repository.NewProfileRepository(db),
		showcases:    repository.NewShowcaseRepository(db),
		comments:     repository.NewCommentRepository(db),
		follows:      repository.NewFollowRepository(db),
		votes:        repository.NewVoteRepository(db),
		passwordHash: string(hash),
	}, nil
}

// CreateUser persists a user with a fake name and an empty profile.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	first, last := f.faker.FirstName(), f.faker.LastName()
	handle := validation.Slugify(first+" "+last, "user") + "-" + strings.ToLower(f.faker.LetterN(4))
	now := time.Now()
	joined := f.faker.DateRange(now.AddDate(-2, 0, 0), now)

	user := &models.User{
		Email:      handle + "@example.com",
		FullName:   first + " " + last,
		Password:   f.passwordHash,
		IsActive:   true,
		DateJoined: joined,
		LastLogin:  &now,
		Slug:       handle,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProfile fills a profile with plausible details without persisting it.
func (f *Factory) BuildProfile(profile *models.Profile) {
	dob := f.faker.DateRange(time.Now().AddDate(-60, 0, 0), time.Now().AddDate(-18, 0, 0))
	bio := f.faker.Sentence(12)
	photo := fmt.Sprintf("https://picsum.photos/seed/%s/400/400", f.faker.UUID())
	city := f.faker.City()
	sex := models.SexMale
	if f.faker.Bool() {
		sex = models.SexFemale
	}
	bodyTypes := []models.BodyType{models.BodyTypeSlim, models.BodyTypeAverage, models.BodyTypeAthletic, models.BodyTypeHeavyset}
	body := bodyTypes[f.faker.Number(0, len(bodyTypes)-1)]
	feet := uint(f.faker.Number(4, 6))
	inches := uint(f.faker.Number(0, 11))

	profile.DateOfBirth = &dob
	profile.Bio = &bio
	profile.ProfilePhoto = &photo
	profile.LivesIn = &city
	profile.Sex = &sex
	profile.BodyType = &body
	profile.Feet = &feet
	profile.Inches = &inches
}

// FillProfile populates the user's profile and tags it with up to three skills.
func (f *Factory) FillProfile(ctx context.Context, user *models.User, skills []models.Skill) (*models.Profile, error) {
	profile, err := f.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	f.BuildProfile(profile)
	if err := f.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := f.profiles.ReplaceSkills(ctx, profile, f.pickSkills(skills, 3)); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (f *Factory) pickSkills(skills []models.Skill, limit int) []models.Skill {
	n := f.faker.Number(1, min(limit, len(skills)))
	shuffled := append([]models.Skill(nil), skills...)
	f.faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}

// CreateShowcase persists a showcase owned by owner and tagged with skill.
func (f *Factory) CreateShowcase(ctx context.Context, owner *models.User, skill *models.Skill) (*models.Showcase, error) {
	title := strings.TrimSuffix(f.faker.Sentence(4), ".")
	if len(title) > 50 {
		title = title[:50]
	}
	description := f.faker.Sentence(10)
	content := f.faker.Paragraph(2, 3, 8, "\n\n")

	showcase := &models.Showcase{
		Title:       title,
		Description: &description,
		Content:     &content,
		UserID:      owner.ID,
		SkillID:     skill.ID,
		Slug:        validation.Slugify(title, "showcase") + "-" + f.faker.UUID()[:8],
	}
	if err := f.showcases.Create(ctx, showcase); err != nil {
		return nil, err
	}
	return showcase, nil
}

// CreateComment persists a comment by author on showcase.
func (f *Factory) CreateComment(ctx context.Context, author *models.User, showcase *models.Showcase) (*models.Comment, error) {
	comment := &models.Comment{Body: f.faker.Sentence(8), ShowcaseID: showcase.ID, UserID: author.ID}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReply persists a reply by author to comment.
func (f *Factory) CreateReply(ctx context.Context, author *models.User, comment *models.Comment) (*models.ReplyComment, error) {
	reply := &models.ReplyComment{Body: f.faker.Sentence(6), CommentID: comment.ID, UserID: author.ID}
	if err := f.comments.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Follow makes actor follow target.
func (f *Factory) Follow(ctx context.Context, actor, target *models.User) error {
	_, err := f.follows.Follow(ctx, target.ID, actor.ID)
	return err
}

// Vote adds voter to the target's voter set.
func (f *Factory) Vote(ctx context.Context, target models.VoteTarget, targetID uint, voter *models.User) error {
	_, err := f.votes.Add(ctx, target, targetID, voter.ID)
	return err
}
