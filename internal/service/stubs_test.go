package service

import (
	"context"
	"sort"

	"creativeapp/internal/models"
	"creativeapp/internal/repository"
)

type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, models.UserID) (*models.User, error)
	getBySlugFn  func(context.Context, string) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	slugExistsFn func(context.Context, string) (bool, error)
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, models.UserID) error
	listFn       func(context.Context, int, int) ([]models.User, error)
	listStaffFn  func(context.Context) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id models.UserID) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) ListStaff(ctx context.Context) ([]models.User, error) {
	return s.listStaffFn(ctx)
}

// usersBySlug returns a GetBySlug stub resolving the given users.
func usersBySlug(users ...*models.User) func(context.Context, string) (*models.User, error) {
	return func(_ context.Context, slug string) (*models.User, error) {
		for _, u := range users {
			if u.Slug == slug {
				return u, nil
			}
		}
		return nil, models.NewNotFoundError("User", slug)
	}
}

type followRepoStub struct {
	followFn             func(context.Context, models.UserID, models.UserID) (*repository.EdgeChange, error)
	transitionFn         func(context.Context, models.UserID, models.UserID, models.FollowStatus) (*repository.EdgeChange, error)
	blockFn              func(context.Context, models.UserID, models.UserID) (*repository.EdgeChange, error)
	getFn                func(context.Context, models.UserID, models.UserID) (*models.FollowLog, error)
	listFollowerSlugsFn  func(context.Context, models.UserID) ([]string, error)
	listFollowingSlugsFn func(context.Context, models.UserID) ([]string, error)
	countsFn             func(context.Context, models.UserID) (int64, int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, target, actor models.UserID) (*repository.EdgeChange, error) {
	return s.followFn(ctx, target, actor)
}
func (s *followRepoStub) Transition(ctx context.Context, target, actor models.UserID, status models.FollowStatus) (*repository.EdgeChange, error) {
	return s.transitionFn(ctx, target, actor, status)
}
func (s *followRepoStub) Block(ctx context.Context, target, actor models.UserID) (*repository.EdgeChange, error) {
	return s.blockFn(ctx, target, actor)
}
func (s *followRepoStub) Get(ctx context.Context, target, actor models.UserID) (*models.FollowLog, error) {
	return s.getFn(ctx, target, actor)
}
func (s *followRepoStub) ListFollowerSlugs(ctx context.Context, userID models.UserID) ([]string, error) {
	return s.listFollowerSlugsFn(ctx, userID)
}
func (s *followRepoStub) ListFollowingSlugs(ctx context.Context, userID models.UserID) ([]string, error) {
	return s.listFollowingSlugsFn(ctx, userID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID models.UserID) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

type showcaseRepoStub struct {
	createFn      func(context.Context, *models.Showcase) error
	getByIDFn     func(context.Context, uint) (*models.Showcase, error)
	getBySlugFn   func(context.Context, string) (*models.Showcase, error)
	slugExistsFn  func(context.Context, string) (bool, error)
	updateFn      func(context.Context, *models.Showcase) error
	deleteFn      func(context.Context, uint) error
	listByUserFn  func(context.Context, models.UserID, int, int) ([]models.Showcase, error)
	listBySkillFn func(context.Context, uint, int, int) ([]models.Showcase, error)
}

func (s *showcaseRepoStub) Create(ctx context.Context, showcase *models.Showcase) error {
	return s.createFn(ctx, showcase)
}
func (s *showcaseRepoStub) GetByID(ctx context.Context, id uint) (*models.Showcase, error) {
	return s.getByIDFn(ctx, id)
}
func (s *showcaseRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Showcase, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *showcaseRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *showcaseRepoStub) Update(ctx context.Context, showcase *models.Showcase) error {
	return s.updateFn(ctx, showcase)
}
func (s *showcaseRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *showcaseRepoStub) ListByUser(ctx context.Context, userID models.UserID, limit, offset int) ([]models.Showcase, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *showcaseRepoStub) ListBySkill(ctx context.Context, skillID uint, limit, offset int) ([]models.Showcase, error) {
	return s.listBySkillFn(ctx, skillID, limit, offset)
}

type skillRepoStub struct {
	createFn    func(context.Context, *models.Skill) error
	getByIDFn   func(context.Context, uint) (*models.Skill, error)
	getByNameFn func(context.Context, string) (*models.Skill, error)
	listFn      func(context.Context) ([]models.Skill, error)
	updateFn    func(context.Context, *models.Skill) error
	deleteFn    func(context.Context, uint) error
	upsertFn    func(context.Context, string) (*models.Skill, error)
}

func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	return s.getByNameFn(ctx, name)
}
func (s *skillRepoStub) List(ctx context.Context) ([]models.Skill, error) {
	return s.listFn(ctx)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *skillRepoStub) Upsert(ctx context.Context, name string) (*models.Skill, error) {
	return s.upsertFn(ctx, name)
}

type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	listByShowcaseFn func(context.Context, uint) ([]models.Comment, error)
	updateFn         func(context.Context, *models.Comment) error
	deleteFn         func(context.Context, uint) error
	createReplyFn    func(context.Context, *models.ReplyComment) error
	getReplyByIDFn   func(context.Context, uint) (*models.ReplyComment, error)
	updateReplyFn    func(context.Context, *models.ReplyComment) error
	deleteReplyFn    func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByShowcase(ctx context.Context, showcaseID uint) ([]models.Comment, error) {
	return s.listByShowcaseFn(ctx, showcaseID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CreateReply(ctx context.Context, reply *models.ReplyComment) error {
	return s.createReplyFn(ctx, reply)
}
func (s *commentRepoStub) GetReplyByID(ctx context.Context, id uint) (*models.ReplyComment, error) {
	return s.getReplyByIDFn(ctx, id)
}
func (s *commentRepoStub) UpdateReply(ctx context.Context, reply *models.ReplyComment) error {
	return s.updateReplyFn(ctx, reply)
}
func (s *commentRepoStub) DeleteReply(ctx context.Context, id uint) error {
	return s.deleteReplyFn(ctx, id)
}

// voterSet is an in-memory voter set with the repository's idempotent semantics.
type voterSet struct {
	members map[models.UserID]struct{}
}

func (s *voterSet) Add(id models.UserID) bool {
	if _, ok := s.members[id]; ok {
		return false
	}
	s.members[id] = struct{}{}
	return true
}

func (s *voterSet) Remove(id models.UserID) bool {
	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	return true
}

func (s *voterSet) Has(id models.UserID) bool {
	_, ok := s.members[id]
	return ok
}

func (s *voterSet) Len() int { return len(s.members) }

func (s *voterSet) IDs() []models.UserID {
	ids := make([]models.UserID, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// voteRepoStub keeps voter sets in memory.
type voteRepoStub struct {
	sets map[models.VoteTarget]map[uint]*voterSet
}

func newVoteRepoStub() *voteRepoStub {
	return &voteRepoStub{sets: map[models.VoteTarget]map[uint]*voterSet{}}
}

func (s *voteRepoStub) set(target models.VoteTarget, id uint) *voterSet {
	if s.sets[target] == nil {
		s.sets[target] = map[uint]*voterSet{}
	}
	if s.sets[target][id] == nil {
		s.sets[target][id] = &voterSet{members: map[models.UserID]struct{}{}}
	}
	return s.sets[target][id]
}

func (s *voteRepoStub) Add(_ context.Context, target models.VoteTarget, id uint, voter models.UserID) (bool, error) {
	return s.set(target, id).Add(voter), nil
}
func (s *voteRepoStub) Remove(_ context.Context, target models.VoteTarget, id uint, voter models.UserID) (bool, error) {
	return s.set(target, id).Remove(voter), nil
}
func (s *voteRepoStub) Has(_ context.Context, target models.VoteTarget, id uint, voter models.UserID) (bool, error) {
	return s.set(target, id).Has(voter), nil
}
func (s *voteRepoStub) Count(_ context.Context, target models.VoteTarget, id uint) (int64, error) {
	return int64(s.set(target, id).Len()), nil
}
func (s *voteRepoStub) Counts(_ context.Context, target models.VoteTarget, ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	for _, id := range ids {
		out[id] = int64(s.set(target, id).Len())
	}
	return out, nil
}
func (s *voteRepoStub) ListVoters(_ context.Context, target models.VoteTarget, id uint) ([]models.UserID, error) {
	return s.set(target, id).IDs(), nil
}
