package services

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memUsers keeps users in a map and enforces the primary key like the store.
type memUsers struct {
	mu   sync.Mutex
	rows map[string]*models.User

	// hideExisting makes Exists always report false, as a concurrent
	// registration that has not committed yet would.
	hideExisting bool
	err          error
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[string]*models.User{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.rows[u.Username]; ok {
		return nil, common.AlreadyExists("Username %s is already in use", u.Username)
	}
	stored := *u
	m.rows[u.Username] = &stored
	out := stored
	out.PasswordHash = ""
	return &out, nil
}

func (m *memUsers) Exists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.hideExisting {
		return false, nil
	}
	_, ok := m.rows[username]
	return ok, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.rows[username]
	if !ok {
		return nil, common.NotFound("No user: %s", username)
	}
	out := *u
	return &out, nil
}

func (m *memUsers) List(_ context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	names := make([]string, 0, len(m.rows))
	for n := range m.rows {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]*models.User, 0, len(names))
	for _, n := range names {
		u := *m.rows[n]
		u.PasswordHash = ""
		out = append(out, &u)
	}
	return out, nil
}

// memApps keeps applications in insertion order.
type memApps struct {
	mu     sync.Mutex
	rows   []*models.Application
	nextID int64
	owners *memUsers
	err    error
}

func (m *memApps) Create(_ context.Context, a *models.Application) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.owners != nil {
		m.owners.mu.Lock()
		_, ok := m.owners.rows[a.UserID]
		m.owners.mu.Unlock()
		if !ok {
			return nil, common.NotFound("No user: %s", a.UserID)
		}
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.rows = append(m.rows, &stored)
	out := stored
	return &out, nil
}

func (m *memApps) ListByUser(_ context.Context, userID string) ([]*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*models.Application{}
	for _, a := range m.rows {
		if a.UserID == userID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memApps) GetByJobPostLink(_ context.Context, link string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.rows {
		if a.JobPostLink == link {
			c := *a
			return &c, nil
		}
	}
	return nil, common.NotFound("No application: %s", link)
}

func (m *memApps) Update(_ context.Context, id int64, p models.ApplicationPatch) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if len(p.Fields()) == 0 {
		return nil, common.InvalidInput("No data")
	}
	for _, a := range m.rows {
		if a.ID != id {
			continue
		}
		if v, ok := p.Role.Get(); ok {
			a.Role = v
		}
		if v, ok := p.CompanyName.Get(); ok {
			a.CompanyName = v
		}
		if v, ok := p.JobPostLink.Get(); ok {
			a.JobPostLink = v
		}
		if v, ok := p.Location.Get(); ok {
			a.Location = v
		}
		if v, ok := p.DateOfApplication.Get(); ok {
			a.DateOfApplication = v
		}
		if v, ok := p.Status.Get(); ok {
			a.Status = v
		}
		c := *a
		return &c, nil
	}
	return nil, common.NotFound("No application: %d", id)
}

func (m *memApps) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, a := range m.rows {
		if a.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return common.NotFound("No application: %d", id)
}

type fakeRepoManager struct {
	u *memUsers
	a *memApps
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) Applications(dbx.DBTX) applications.Repository { return m.a }
