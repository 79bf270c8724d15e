package repository

import (
	"context"
	"regexp"
	"testing"

	"creativeapp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		slug         string
		mockBehavior func()
		wantEmail    string
		wantCode     string
	}{
		{
			name: "Success",
			slug: "jane",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "slug"}).AddRow(1, "jane@example.com", "jane")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE slug = $1`)).
					WithArgs("jane", 1).
					WillReturnRows(rows)
			},
			wantEmail: "jane@example.com",
		},
		{
			name: "Not Found",
			slug: "ghost",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE slug = $1`)).
					WithArgs("ghost", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			wantCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetBySlug(ctx, tt.slug)

			if tt.wantCode != "" {
				assert.True(t, models.IsCode(err, tt.wantCode))
			} else if assert.NoError(t, err) {
				assert.Equal(t, tt.wantEmail, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_DeleteWithShowcasesIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(7).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "update or delete violates foreign key constraint"})
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil, "User", 1))
	assert.True(t, models.IsCode(translateError(gorm.ErrRecordNotFound, "User", 1), models.CodeNotFound))
	assert.True(t, models.IsCode(translateError(&pgconn.PgError{Code: "23505"}, "User", 1), models.CodeConflict))
	assert.True(t, models.IsCode(translateError(&pgconn.PgError{Code: "23503"}, "User", 1), models.CodeConflict))
	assert.True(t, models.IsCode(translateError(models.NewEdgeNotFoundError(), "FollowLog", 1), models.CodeEdgeNotFound))
	assert.True(t, models.IsCode(translateError(assert.AnError, "User", 1), models.CodeInternal))
}

func TestUserRepository_CreateAddsEmptyProfile(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "jane")

	require.NotNil(t, user.Profile)
	profile, err := NewProfileRepository(db).GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Empty(t, profile.Skills)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "jane")

	err := repo.Create(context.Background(), &models.User{Email: "jane@example.com", Password: "x", Slug: "jane-2"})
	assert.True(t, models.IsCode(err, models.CodeConflict))

	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles, "failed create must not leave a profile behind")
}

func TestUserRepository_DeleteRestrictedByShowcase(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	owner := createUser(t, db, "owner")
	createShowcase(t, db, owner, createSkill(t, db, "Painting"), "first")

	err := repo.Delete(context.Background(), owner.ID)
	assert.True(t, models.IsCode(err, models.CodeConflict))

	_, err = repo.GetByID(context.Background(), owner.ID)
	assert.NoError(t, err)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	commenter := createUser(t, db, "commenter")
	showcase := createShowcase(t, db, owner, createSkill(t, db, "Painting"), "first")

	comments := NewCommentRepository(db)
	comment := &models.Comment{Body: "nice", ShowcaseID: showcase.ID, UserID: commenter.ID}
	require.NoError(t, comments.Create(ctx, comment))
	reply := &models.ReplyComment{Body: "thanks", CommentID: comment.ID, UserID: commenter.ID}
	require.NoError(t, comments.CreateReply(ctx, reply))

	votes := NewVoteRepository(db)
	_, err := votes.Add(ctx, models.VoteTargetShowcase, showcase.ID, commenter.ID)
	require.NoError(t, err)

	require.NoError(t, NewUserRepository(db).Delete(ctx, commenter.ID))

	_, err = comments.GetByID(ctx, comment.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	_, err = comments.GetReplyByID(ctx, reply.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	count, err := votes.Count(ctx, models.VoteTargetShowcase, showcase.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = NewUserRepository(db).Delete(ctx, commenter.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUserRepository_ListStaff(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "plain")
	staff := createUser(t, db, "staff")
	staff.IsStaff = true
	require.NoError(t, repo.Update(context.Background(), staff))

	users, err := repo.ListStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "staff", users[0].Slug)

	exists, err := repo.SlugExists(context.Background(), "plain")
	require.NoError(t, err)
	assert.True(t, exists)
}
