package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*models.PublicUser, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	List(ctx context.Context) ([]*models.PublicUser, error)
	Get(ctx context.Context, username string) (*models.PublicUser, error)
	UserFromToken(ctx context.Context, token string) (*models.PublicUser, error)
}

type ApplicationService interface {
	Create(ctx context.Context, in services.CreateApplicationInput) (*models.Application, error)
	List(ctx context.Context, userID string) ([]*models.Application, error)
	Get(ctx context.Context, jobPostLink string) (*models.Application, error)
	Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
}

type Migrator interface {
	Migrate(ctx context.Context) error
}

type App struct {
	users    UserService
	apps     ApplicationService
	migrator Migrator
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(us UserService, as ApplicationService, m Migrator, in io.Reader, out io.Writer) *App {
	return &App{users: us, apps: as, migrator: m, reader: bufio.NewReader(in), out: out}
}

const usage = `Usage: jobtracker [flags] <command> [args]

Commands:
  migrate                    apply schema migrations
  register [--admin]         create a user (interactive)
  login                      check credentials and print an access token
  whoami <token>             show the user an access token belongs to
  users                      list users
  user <username>            show one user
  apps <username>            list a user's applications
  app <jobpostlink>          show the first application for a job post
  add-app <username>         record an application (interactive)
  set-status <id> <status>   change an application's status
  delete-app <id>            delete an application`

// ErrUsage is returned when the command line cannot be dispatched.
var ErrUsage = common.InvalidInput("%s", usage)

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	need := func(n int) error {
		if len(rest) != n {
			return ErrUsage
		}
		return nil
	}

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	case "migrate":
		return a.migrate(ctx)
	case "register":
		admin, err := parseRegisterArgs(rest)
		if err != nil {
			return err
		}
		return a.register(ctx, admin)
	case "login":
		return a.login(ctx)
	case "whoami":
		if err := need(1); err != nil {
			return err
		}
		return a.whoami(ctx, rest[0])
	case "users":
		return a.listUsers(ctx)
	case "user":
		if err := need(1); err != nil {
			return err
		}
		return a.showUser(ctx, rest[0])
	case "apps":
		if err := need(1); err != nil {
			return err
		}
		return a.listApps(ctx, rest[0])
	case "app":
		if err := need(1); err != nil {
			return err
		}
		return a.showApp(ctx, rest[0])
	case "add-app":
		if err := need(1); err != nil {
			return err
		}
		return a.addApp(ctx, rest[0])
	case "set-status":
		if err := need(2); err != nil {
			return err
		}
		return a.setStatus(ctx, rest[0], rest[1])
	case "delete-app":
		if err := need(1); err != nil {
			return err
		}
		return a.deleteApp(ctx, rest[0])
	default:
		return common.InvalidInput("Unknown command: %s", cmd)
	}
}

func (a *App) migrate(ctx context.Context) error {
	if err := a.migrator.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

func parseRegisterArgs(args []string) (bool, error) {
	switch {
	case len(args) == 0:
		return false, nil
	case len(args) == 1 && (args[0] == "--admin" || args[0] == "-admin"):
		return true, nil
	default:
		return false, ErrUsage
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.InvalidInput("Invalid id: %s", s)
	}
	return id, nil
}
