package repository

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)
	GetBySlug(ctx context.Context, slug string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id models.UserID) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListStaff(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

// Create inserts the user and its empty profile in one transaction.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{UserID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return translateError(err, "User", user.Email)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"user_id": user.ID, "slug": user.Slug})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetBySlug(ctx context.Context, slug string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&user).Error; err != nil {
		return nil, translateError(err, "User", slug)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, "User", email)
	}
	return &user, nil
}

func (r *userRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return translateError(err, "User", user.ID)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}

// Delete removes the user. Owned rows cascade, except showcases which
// block the delete until they are removed.
func (r *userRepository) Delete(ctx context.Context, id models.UserID) error {
	defer observability.TrackQuery("delete", "users")()

	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		if isForeignKeyError(res.Error) {
			return models.NewConflictError("User still owns showcases", res.Error)
		}
		return translateError(res.Error, "User", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user_id": id})
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if limit <= 0 {
		limit = 20
	}
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) ListStaff(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("is_staff = ?", true).Order("id ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
