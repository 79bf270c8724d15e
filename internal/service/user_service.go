package service

import (
	"context"
	"log/slog"
	"time"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"
	"creativeapp/internal/validation"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserInput carries the fields accepted when registering an account.
// Slug and IsActive are optional overrides.
type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	Slug     string
	IsActive *bool
}

// Validate checks the input after the email has been normalized.
func (in CreateUserInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Email, validation.EmailRules()...),
		ozzo.Field(&in.FullName, ozzo.RuneLength(0, 250)),
		ozzo.Field(&in.Password, ozzo.By(func(interface{}) error {
			return validation.ValidatePassword(in.Password)
		})),
		ozzo.Field(&in.Slug, ozzo.When(in.Slug != "", ozzo.By(func(interface{}) error {
			return validation.ValidateSlug(in.Slug)
		}))),
	)
}

// UserService provides account business logic.
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewUserService returns a new UserService. A zero cost uses bcrypt.DefaultCost.
func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost, now: time.Now}
}

// CreateUser registers a regular active account together with its empty profile.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	return s.createAccount(ctx, in, false)
}

// CreateSuperuser registers an account with staff and superuser rights.
func (s *UserService) CreateSuperuser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	return s.createAccount(ctx, in, true)
}

func (s *UserService) createAccount(ctx context.Context, in CreateUserInput, superuser bool) (user *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService", "createAccount")
	defer func() { observability.EndSpan(span, err) }()

	in.Email = validation.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, models.NewConflictError("User already exists", nil)
	} else if err != nil && !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		base := validation.Slugify(in.FullName, validation.EmailLocalPart(in.Email))
		if slug, err = validation.UniqueSlug(ctx, base, s.userRepo.SlugExists); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	now := s.now()
	user = &models.User{
		Email:       in.Email,
		FullName:    in.FullName,
		Slug:        slug,
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
		LastLogin:   &now,
		DateJoined:  now,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := user.SetPassword(in.Password, s.bcryptCost); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	kind := "user"
	if superuser {
		kind = "superuser"
	}
	observability.UserRegistrations.WithLabelValues(kind).Inc()
	observability.Logger.InfoContext(ctx, "user created",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("slug", user.Slug),
		slog.String("kind", kind),
	)
	return user, nil
}

// Authenticate checks credentials and stamps LastLogin.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is inactive")
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetBySlug returns the user with the given public identifier.
func (s *UserService) GetBySlug(ctx context.Context, slug string) (*models.User, error) {
	return userBySlug(ctx, s.userRepo, slug)
}

// SetStaff grants or revokes staff rights.
func (s *UserService) SetStaff(ctx context.Context, slug string, staff bool) (*models.User, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	if user.IsStaff == staff {
		return user, nil
	}
	user.IsStaff = staff
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword replaces the stored hash.
func (s *UserService) SetPassword(ctx context.Context, slug, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return invalid(err)
	}
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.Update(ctx, user)
}

// DeleteUser removes the account. It fails with CONFLICT while the user
// still owns showcases.
func (s *UserService) DeleteUser(ctx context.Context, slug string) error {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// ListStaff returns every staff account.
func (s *UserService) ListStaff(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListStaff(ctx)
}
