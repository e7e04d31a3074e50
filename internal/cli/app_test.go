package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	registered services.RegisterUserInput
	loginUser  string
	loginPass  string
	err        error
	list       []*models.PublicUser
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterUserInput) (*models.PublicUser, error) {
	f.registered = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.PublicUser{Username: in.Username, IsAdmin: in.IsAdmin}, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (*services.Session, error) {
	f.loginUser, f.loginPass = username, password
	if f.err != nil {
		return nil, f.err
	}
	return &services.Session{User: &models.PublicUser{Username: username}, AccessToken: "tok"}, nil
}

func (f *fakeUsers) List(context.Context) ([]*models.PublicUser, error) {
	return f.list, f.err
}

func (f *fakeUsers) Get(_ context.Context, username string) (*models.PublicUser, error) {
	for _, u := range f.list {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.NotFound("No user: %s", username)
}

func (f *fakeUsers) UserFromToken(ctx context.Context, token string) (*models.PublicUser, error) {
	if token != "tok" {
		return nil, common.ErrInvalidToken
	}
	return f.Get(ctx, "alice")
}

type fakeApps struct {
	created services.CreateApplicationInput
	patchID int64
	patch   models.ApplicationPatch
	deleted int64
	app     *models.Application
	err     error
}

func (f *fakeApps) Create(_ context.Context, in services.CreateApplicationInput) (*models.Application, error) {
	f.created = in
	return &models.Application{ID: 5}, f.err
}

func (f *fakeApps) List(context.Context, string) ([]*models.Application, error) {
	if f.app == nil {
		return []*models.Application{}, f.err
	}
	return []*models.Application{f.app}, f.err
}

func (f *fakeApps) Get(_ context.Context, link string) (*models.Application, error) {
	if f.app == nil || f.app.JobPostLink != link {
		return nil, common.NotFound("No application: %s", link)
	}
	return f.app, nil
}

func (f *fakeApps) Update(_ context.Context, id int64, p models.ApplicationPatch) (*models.Application, error) {
	f.patchID, f.patch = id, p
	if f.err != nil {
		return nil, f.err
	}
	return f.app, nil
}

func (f *fakeApps) Delete(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

type fakeMigrator struct {
	calls int
	err   error
}

func (f *fakeMigrator) Migrate(context.Context) error {
	f.calls++
	return f.err
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func sampleApp() *models.Application {
	return &models.Application{
		ID:                3,
		Role:              "Backend Engineer",
		CompanyName:       "Acme",
		JobPostLink:       "https://acme.example/jobs/1",
		DateOfApplication: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:            "applied",
		UserID:            "alice",
	}
}

func newTestApp(input string) (*App, *fakeUsers, *fakeApps, *fakeMigrator, *bytes.Buffer) {
	us, as, m := &fakeUsers{}, &fakeApps{}, &fakeMigrator{}
	var out bytes.Buffer
	return NewApp(us, as, m, strings.NewReader(input), &out), us, as, m, &out
}

func TestRun_Usage(t *testing.T) {
	a, _, _, _, out := newTestApp("")

	require.ErrorIs(t, a.Run(context.Background(), nil), common.ErrorInvalidInput)
	require.ErrorIs(t, a.Run(context.Background(), []string{"user"}), common.ErrorInvalidInput)

	err := a.Run(context.Background(), []string{"frobnicate"})
	require.ErrorIs(t, err, common.ErrorInvalidInput)
	assert.Contains(t, err.Error(), "frobnicate")

	require.NoError(t, a.Run(context.Background(), []string{"help"}))
	assert.Contains(t, out.String(), "set-status <id> <status>")
}

func TestRun_Migrate(t *testing.T) {
	a, _, _, m, out := newTestApp("")
	require.NoError(t, a.Run(context.Background(), []string{"migrate"}))
	assert.Equal(t, 1, m.calls)
	assert.Contains(t, out.String(), "Migrations applied")

	m.err = errors.New("boom")
	require.Error(t, a.Run(context.Background(), []string{"migrate"}))
}

func TestRun_Register(t *testing.T) {
	stubPassword(t, "secret1")
	a, us, _, _, out := newTestApp("alice\nAlice\nLiddell\nalice@example.com\n\n\n")

	require.NoError(t, a.Run(context.Background(), []string{"register"}))
	assert.Equal(t, services.RegisterUserInput{
		Username:  "alice",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
	}, us.registered)
	assert.Contains(t, out.String(), "Registered alice")
	assert.NotContains(t, out.String(), "secret1")
}

func TestRun_Login(t *testing.T) {
	stubPassword(t, "secret1")
	a, us, _, _, out := newTestApp("alice\n")

	require.NoError(t, a.Run(context.Background(), []string{"login"}))
	assert.Equal(t, "alice", us.loginUser)
	assert.Equal(t, "secret1", us.loginPass)
	assert.Contains(t, out.String(), "Logged in as alice\ntok\n")

	us.err = common.ErrInvalidCredentials
	a2 := NewApp(us, &fakeApps{}, &fakeMigrator{}, strings.NewReader("alice\n"), &bytes.Buffer{})
	err := a2.Run(context.Background(), []string{"login"})
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, "invalid username/password", err.Error())
}

func TestRun_UsersAndUser(t *testing.T) {
	a, us, _, _, out := newTestApp("")
	us.list = []*models.PublicUser{
		{Username: "alice", FirstName: "Alice", Email: "a@example.com"},
		{Username: "bob", FirstName: "Bob", Email: "b@example.com", GithubLink: "https://github.com/bob"},
	}

	require.NoError(t, a.Run(context.Background(), []string{"users"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "alice"))
	assert.True(t, strings.HasPrefix(lines[2], "bob"))

	out.Reset()
	require.NoError(t, a.Run(context.Background(), []string{"user", "bob"}))
	assert.Contains(t, out.String(), "GitHub:    https://github.com/bob")

	err := a.Run(context.Background(), []string{"user", "ghost"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRun_Apps(t *testing.T) {
	a, _, as, _, out := newTestApp("")
	as.app = sampleApp()

	require.NoError(t, a.Run(context.Background(), []string{"apps", "alice"}))
	assert.Contains(t, out.String(), "2024-03-01")
	assert.Contains(t, out.String(), "Acme")

	out.Reset()
	require.NoError(t, a.Run(context.Background(), []string{"app", "https://acme.example/jobs/1"}))
	assert.Contains(t, out.String(), "Role:     Backend Engineer")

	require.ErrorIs(t, a.Run(context.Background(), []string{"app", "nope"}), common.ErrorNotFound)
}

func TestRun_AddApp(t *testing.T) {
	a, _, as, _, out := newTestApp("Engineer\nAcme\nhttps://acme.example/1\n\napplied\n2024-03-01\n")

	require.NoError(t, a.Run(context.Background(), []string{"add-app", "alice"}))
	assert.Equal(t, services.CreateApplicationInput{
		Role:              "Engineer",
		CompanyName:       "Acme",
		JobPostLink:       "https://acme.example/1",
		Status:            "applied",
		DateOfApplication: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		UserID:            "alice",
	}, as.created)
	assert.Contains(t, out.String(), "Created application 5")
}

func TestRun_AddApp_BadDate(t *testing.T) {
	a, _, _, _, _ := newTestApp("Engineer\nAcme\nl\n\n\n01/03/2024\n")
	err := a.Run(context.Background(), []string{"add-app", "alice"})
	require.ErrorIs(t, err, common.ErrorInvalidInput)
}

func TestRun_SetStatus(t *testing.T) {
	a, _, as, _, out := newTestApp("")
	as.app = sampleApp()

	require.NoError(t, a.Run(context.Background(), []string{"set-status", "3", "interview"}))
	assert.Equal(t, int64(3), as.patchID)
	status, ok := as.patch.Status.Get()
	assert.True(t, ok)
	assert.Equal(t, "interview", status)
	assert.False(t, as.patch.Role.IsSet())
	assert.Contains(t, out.String(), "ID:       3")

	err := a.Run(context.Background(), []string{"set-status", "abc", "x"})
	require.ErrorIs(t, err, common.ErrorInvalidInput)
	assert.Equal(t, "Invalid id: abc", err.Error())
}

func TestRun_DeleteApp(t *testing.T) {
	a, _, as, _, out := newTestApp("")

	require.NoError(t, a.Run(context.Background(), []string{"delete-app", "9"}))
	assert.Equal(t, int64(9), as.deleted)
	assert.Contains(t, out.String(), "Deleted application 9")

	as.err = common.NotFound("No application: %d", 9)
	require.ErrorIs(t, a.Run(context.Background(), []string{"delete-app", "9"}), common.ErrorNotFound)

	require.ErrorIs(t, a.Run(context.Background(), []string{"delete-app", "0"}), common.ErrorInvalidInput)
}

func TestRun_Whoami(t *testing.T) {
	a, us, _, _, out := newTestApp("")
	us.list = []*models.PublicUser{{Username: "alice", FirstName: "Alice"}}

	require.NoError(t, a.Run(context.Background(), []string{"whoami", "tok"}))
	assert.Contains(t, out.String(), "Username:  alice")

	require.ErrorIs(t, a.Run(context.Background(), []string{"whoami", "bad"}), common.ErrorUnauthorized)
}

func TestRun_RegisterAdmin(t *testing.T) {
	stubPassword(t, "secret1")
	a, us, _, _, out := newTestApp("root\nRoot\nAdmin\nroot@example.com\n\n\n")

	require.NoError(t, a.Run(context.Background(), []string{"register", "--admin"}))
	assert.True(t, us.registered.IsAdmin)
	assert.Equal(t, "root", us.registered.Username)
	assert.Contains(t, out.String(), "Registered root (admin)")

	err := a.Run(context.Background(), []string{"register", "--root"})
	require.ErrorIs(t, err, common.ErrorInvalidInput)
}
