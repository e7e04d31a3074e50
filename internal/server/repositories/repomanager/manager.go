package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// constructors serve both the pool and an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Applications(db dbx.DBTX) applications.Repository
}
