package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"

	"gorm.io/gorm"
)

// Options controls the size of a generated community.
type Options struct {
	Users             int
	ShowcasesPerUser  int
	CommentsPerPost   int
	FollowProbability float64
	VoteProbability   float64
}

// DefaultOptions returns a small community suitable for local development.
func DefaultOptions() Options {
	return Options{
		Users:             20,
		ShowcasesPerUser:  2,
		CommentsPerPost:   3,
		FollowProbability: 0.3,
		VoteProbability:   0.4,
	}
}

// Summary counts what a seeding run created.
type Summary struct {
	Skills    int
	Users     int
	Showcases int
	Comments  int
	Replies   int
	Follows   int
	Votes     int
}

// Seeder fills a database with demo data.
type Seeder struct {
	db      *gorm.DB
	skills  repository.SkillRepository
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder. seed makes the generated data reproducible; zero picks a random one.
func NewSeeder(db *gorm.DB, seed int64) (*Seeder, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	factory, err := NewFactory(db, seed)
	if err != nil {
		return nil, err
	}
	return &Seeder{
		db:      db,
		skills:  repository.NewSkillRepository(db),
		factory: factory,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// SeedSkills upserts every catalog skill. Existing skills are kept.
func (s *Seeder) SeedSkills(ctx context.Context) ([]models.Skill, error) {
	names, err := SkillCatalog()
	if err != nil {
		return nil, err
	}
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		skill, err := s.skills.Upsert(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("upsert skill %q: %w", name, err)
		}
		skills = append(skills, *skill)
	}
	observability.Logger.InfoContext(ctx, "Seeded skills", slog.Int("count", len(skills)))
	return skills, nil
}

// SeedCommunity creates users with profiles, their showcases, comments
// with replies, a follow mesh, and votes on everything.
func (s *Seeder) SeedCommunity(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Users <= 0 {
		return nil, errors.New("seed: at least one user is required")
	}

	skills, err := s.SeedSkills(ctx)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Skills: len(skills)}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.factory.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		if _, err := s.factory.FillProfile(ctx, user, skills); err != nil {
			return nil, fmt.Errorf("fill profile for %s: %w", user.Slug, err)
		}
		users = append(users, user)
	}
	summary.Users = len(users)
	observability.Logger.InfoContext(ctx, "Seeded users", slog.Int("count", len(users)))

	for _, actor := range users {
		for _, target := range users {
			if actor.ID == target.ID || s.rng.Float64() >= opts.FollowProbability {
				continue
			}
			if err := s.factory.Follow(ctx, actor, target); err != nil {
				return nil, fmt.Errorf("follow %s -> %s: %w", actor.Slug, target.Slug, err)
			}
			summary.Follows++
		}
	}

	for _, owner := range users {
		for i := 0; i < opts.ShowcasesPerUser; i++ {
			skill := skills[s.rng.Intn(len(skills))]
			showcase, err := s.factory.CreateShowcase(ctx, owner, &skill)
			if err != nil {
				return nil, fmt.Errorf("create showcase: %w", err)
			}
			summary.Showcases++

			votes, err := s.voteFrom(ctx, users, models.VoteTargetShowcase, showcase.ID, opts.VoteProbability)
			if err != nil {
				return nil, err
			}
			summary.Votes += votes

			if err := s.seedDiscussion(ctx, users, showcase, opts, summary); err != nil {
				return nil, err
			}
		}
	}

	observability.Logger.InfoContext(ctx, "Seeded community",
		slog.Int("users", summary.Users),
		slog.Int("showcases", summary.Showcases),
		slog.Int("comments", summary.Comments),
		slog.Int("replies", summary.Replies),
		slog.Int("follows", summary.Follows),
		slog.Int("votes", summary.Votes),
	)
	return summary, nil
}

func (s *Seeder) seedDiscussion(ctx context.Context, users []*models.User, showcase *models.Showcase, opts Options, summary *Summary) error {
	for i := 0; i < opts.CommentsPerPost; i++ {
		author := users[s.rng.Intn(len(users))]
		comment, err := s.factory.CreateComment(ctx, author, showcase)
		if err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		summary.Comments++

		votes, err := s.voteFrom(ctx, users, models.VoteTargetComment, comment.ID, opts.VoteProbability)
		if err != nil {
			return err
		}
		summary.Votes += votes

		if s.rng.Intn(2) == 0 {
			continue
		}
		replier := users[s.rng.Intn(len(users))]
		reply, err := s.factory.CreateReply(ctx, replier, comment)
		if err != nil {
			return fmt.Errorf("create reply: %w", err)
		}
		summary.Replies++

		votes, err = s.voteFrom(ctx, users, models.VoteTargetReply, reply.ID, opts.VoteProbability)
		if err != nil {
			return err
		}
		summary.Votes += votes
	}
	return nil
}

func (s *Seeder) voteFrom(ctx context.Context, users []*models.User, target models.VoteTarget, targetID uint, probability float64) (int, error) {
	count := 0
	for _, voter := range users {
		if s.rng.Float64() >= probability {
			continue
		}
		if err := s.factory.Vote(ctx, target, targetID, voter); err != nil {
			return count, fmt.Errorf("vote on %s %d: %w", target, targetID, err)
		}
		count++
	}
	return count, nil
}

// clearOrder lists tables children first so foreign keys never block a delete.
var clearOrder = []string{
	"reply_voters",
	"comment_voters",
	"showcase_voters",
	"reply_comments",
	"comments",
	"showcases",
	"follow_logs",
	"profile_skills",
	"profiles",
	"skills",
	"users",
}

// ClearAll removes all application data. Postgres tables are truncated;
// other dialects fall back to row deletes in dependency order.
func (s *Seeder) ClearAll(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		stmt := "TRUNCATE TABLE "
		for i, table := range clearOrder {
			if i > 0 {
				stmt += ", "
			}
			stmt += table
		}
		if err := db.Exec(stmt + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("truncate tables: %w", err)
		}
	} else {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, table := range clearOrder {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("clear %s: %w", table, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	observability.Logger.InfoContext(ctx, "Cleared seeded data", slog.Int("tables", len(clearOrder)))
	return nil
}
