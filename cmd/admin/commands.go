package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"creativeapp/internal/repository"
	"creativeapp/internal/service"

	"gorm.io/gorm"
)

const usageText = `Usage:
  admin createsuperuser <email> <fullname> <password>  - Create a superuser account
  admin promote <slug>                                 - Grant staff rights
  admin demote <slug>                                  - Revoke staff rights
  admin list-staff                                     - List staff accounts
  admin set-password <slug> <password>                 - Replace a user's password
  admin delete-user <slug>                             - Delete an account
  admin block <target-slug> <follower-slug>            - Block a follower of target
  admin follows <slug>                                 - Show follower and following counts
  admin add-skill <name>                               - Create a skill
  admin rename-skill <id> <name>                       - Rename a skill
  admin delete-skill <id>                              - Delete a skill and its showcases
  admin list-skills                                    - List skills
`

var errUsage = errors.New("invalid arguments")

type app struct {
	users   *service.UserService
	follows *service.FollowService
	skills  *service.SkillService
	out     io.Writer
}

func newApp(db *gorm.DB, bcryptCost int, out io.Writer) *app {
	userRepo := repository.NewUserRepository(db)
	return &app{
		users:   service.NewUserService(userRepo, bcryptCost),
		follows: service.NewFollowService(repository.NewFollowRepository(db), userRepo),
		skills:  service.NewSkillService(repository.NewSkillRepository(db)),
		out:     out,
	}
}

type command struct {
	args int
	run  func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"createsuperuser": {3, (*app).createSuperuser},
	"promote":         {1, func(a *app, ctx context.Context, args []string) error { return a.setStaff(ctx, args[0], true) }},
	"demote":          {1, func(a *app, ctx context.Context, args []string) error { return a.setStaff(ctx, args[0], false) }},
	"list-staff":      {0, (*app).listStaff},
	"set-password":    {2, (*app).setPassword},
	"delete-user":     {1, (*app).deleteUser},
	"block":           {2, (*app).block},
	"follows":         {1, (*app).followCounts},
	"add-skill":       {1, (*app).addSkill},
	"rename-skill":    {2, (*app).renameSkill},
	"delete-skill":    {1, (*app).deleteSkill},
	"list-skills":     {0, (*app).listSkills},
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usageText)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usageText)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != cmd.args {
		fmt.Fprint(a.out, usageText)
		return fmt.Errorf("%s: %w", args[0], errUsage)
	}
	return cmd.run(a, ctx, args[1:])
}

func (a *app) createSuperuser(ctx context.Context, args []string) error {
	user, err := a.users.CreateSuperuser(ctx, service.CreateUserInput{Email: args[0], FullName: args[1], Password: args[2]})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created superuser %s (slug: %s)\n", user.Email, user.Slug)
	return nil
}

func (a *app) setStaff(ctx context.Context, slug string, staff bool) error {
	user, err := a.users.SetStaff(ctx, slug, staff)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s staff=%t\n", user.Slug, user.IsStaff)
	return nil
}

func (a *app) listStaff(ctx context.Context, _ []string) error {
	staff, err := a.users.ListStaff(ctx)
	if err != nil {
		return err
	}
	if len(staff) == 0 {
		fmt.Fprintln(a.out, "No staff accounts found")
		return nil
	}
	for _, u := range staff {
		fmt.Fprintf(a.out, "%s\t%s\tsuperuser=%t\n", u.Slug, u.Email, u.IsSuperuser)
	}
	return nil
}

func (a *app) setPassword(ctx context.Context, args []string) error {
	if err := a.users.SetPassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password updated for %s\n", args[0])
	return nil
}

func (a *app) deleteUser(ctx context.Context, args []string) error {
	if err := a.users.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", args[0])
	return nil
}

func (a *app) block(ctx context.Context, args []string) error {
	result, err := a.follows.BlockFollower(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, result.Message())
	return nil
}

func (a *app) followCounts(ctx context.Context, args []string) error {
	counts, err := a.follows.GetFollowCounts(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "followers=%d following=%d\n", counts.Followers, counts.Following)
	return nil
}

func (a *app) addSkill(ctx context.Context, args []string) error {
	skill, err := a.skills.CreateSkill(ctx, args[0], nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created skill %d %s\n", skill.ID, skill.Name)
	return nil
}

func (a *app) renameSkill(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	skill, err := a.skills.RenameSkill(ctx, id, args[1], nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Renamed skill %d to %s\n", skill.ID, skill.Name)
	return nil
}

func (a *app) deleteSkill(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.skills.DeleteSkill(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted skill %d\n", id)
	return nil
}

func (a *app) listSkills(ctx context.Context, _ []string) error {
	skills, err := a.skills.ListSkills(ctx)
	if err != nil {
		return err
	}
	for _, s := range skills {
		fmt.Fprintf(a.out, "%d\t%s\n", s.ID, s.Name)
	}
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return uint(id), nil
}
