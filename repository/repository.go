package repository

import (
	"database/sql"
	"time"

	"github.com/lightbnb/lightbnb/internal/jsonlog"
)

// queryTimeout bounds every statement issued by the repository.
const queryTimeout = 3 * time.Second

type Repository interface {
	users
	reservations
	properties
}

// repository defines the app's repository layer. Connections are borrowed from
// the shared pool for the duration of a single statement.
type repository struct {
	db     *sql.DB
	logger *jsonlog.Logger
}

// New creates a new instance of Repository.
func New(db *sql.DB, logger *jsonlog.Logger) *repository {
	return &repository{db: db, logger: logger}
}
