// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"

	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// mapUniqueViolation translates a Postgres unique-constraint error into
// store.ErrDuplicate so callers don't depend on the driver.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", store.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	return queryCreateUser(ctx, s.db, user)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return queryGetUserByID(ctx, s.db, id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return queryGetUserByUsername(ctx, s.db, username)
}

func (s *PostgresStore) CreateSession(ctx context.Context, session *model.Session) error {
	return queryCreateSession(ctx, s.db, session)
}

func (s *PostgresStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	return queryGetSession(ctx, s.db, token)
}

func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	return queryDeleteSession(ctx, s.db, token)
}

func (s *PostgresStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	return queryDeleteUserSessions(ctx, s.db, userID)
}

func (s *PostgresStore) CreateNews(ctx context.Context, news *model.News) error {
	return queryCreateNews(ctx, s.db, news)
}

func (s *PostgresStore) GetNews(ctx context.Context, id int64) (*model.News, error) {
	return queryGetNews(ctx, s.db, id)
}

func (s *PostgresStore) ListNews(ctx context.Context, filter model.NewsFilter) ([]*model.News, int, error) {
	return queryListNews(ctx, s.db, filter)
}

func (s *PostgresStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return queryCreateComment(ctx, s.db, comment)
}

func (s *PostgresStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	return queryGetComment(ctx, s.db, id)
}

func (s *PostgresStore) ListComments(ctx context.Context, newsID int64) ([]*model.Comment, error) {
	return queryListComments(ctx, s.db, newsID)
}

func (s *PostgresStore) UpdateComment(ctx context.Context, comment *model.Comment) error {
	return queryUpdateComment(ctx, s.db, comment)
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id int64) error {
	return queryDeleteComment(ctx, s.db, id)
}

func (s *PostgresStore) CreateNote(ctx context.Context, note *model.Note) error {
	return queryCreateNote(ctx, s.db, note)
}

func (s *PostgresStore) GetNoteBySlug(ctx context.Context, slug string) (*model.Note, error) {
	return queryGetNoteBySlug(ctx, s.db, slug)
}

func (s *PostgresStore) ListNotesByAuthor(ctx context.Context, authorID int64) ([]*model.Note, error) {
	return queryListNotesByAuthor(ctx, s.db, authorID)
}

func (s *PostgresStore) ListAllNotes(ctx context.Context) ([]*model.Note, error) {
	return queryListAllNotes(ctx, s.db)
}

func (s *PostgresStore) UpdateNote(ctx context.Context, note *model.Note) error {
	return queryUpdateNote(ctx, s.db, note)
}

func (s *PostgresStore) DeleteNote(ctx context.Context, id int64) error {
	return queryDeleteNote(ctx, s.db, id)
}

func (s *PostgresStore) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return querySlugTaken(ctx, s.db, slug)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateUser(ctx context.Context, user *model.User) error {
	return queryCreateUser(ctx, s.tx, user)
}

func (s *txStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return queryGetUserByID(ctx, s.tx, id)
}

func (s *txStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return queryGetUserByUsername(ctx, s.tx, username)
}

func (s *txStore) CreateSession(ctx context.Context, session *model.Session) error {
	return queryCreateSession(ctx, s.tx, session)
}

func (s *txStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	return queryGetSession(ctx, s.tx, token)
}

func (s *txStore) DeleteSession(ctx context.Context, token string) error {
	return queryDeleteSession(ctx, s.tx, token)
}

func (s *txStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	return queryDeleteUserSessions(ctx, s.tx, userID)
}

func (s *txStore) CreateNews(ctx context.Context, news *model.News) error {
	return queryCreateNews(ctx, s.tx, news)
}

func (s *txStore) GetNews(ctx context.Context, id int64) (*model.News, error) {
	return queryGetNews(ctx, s.tx, id)
}

func (s *txStore) ListNews(ctx context.Context, filter model.NewsFilter) ([]*model.News, int, error) {
	return queryListNews(ctx, s.tx, filter)
}

func (s *txStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return queryCreateComment(ctx, s.tx, comment)
}

func (s *txStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	return queryGetComment(ctx, s.tx, id)
}

func (s *txStore) ListComments(ctx context.Context, newsID int64) ([]*model.Comment, error) {
	return queryListComments(ctx, s.tx, newsID)
}

func (s *txStore) UpdateComment(ctx context.Context, comment *model.Comment) error {
	return queryUpdateComment(ctx, s.tx, comment)
}

func (s *txStore) DeleteComment(ctx context.Context, id int64) error {
	return queryDeleteComment(ctx, s.tx, id)
}

func (s *txStore) CreateNote(ctx context.Context, note *model.Note) error {
	return queryCreateNote(ctx, s.tx, note)
}

func (s *txStore) GetNoteBySlug(ctx context.Context, slug string) (*model.Note, error) {
	return queryGetNoteBySlug(ctx, s.tx, slug)
}

func (s *txStore) ListNotesByAuthor(ctx context.Context, authorID int64) ([]*model.Note, error) {
	return queryListNotesByAuthor(ctx, s.tx, authorID)
}

func (s *txStore) ListAllNotes(ctx context.Context) ([]*model.Note, error) {
	return queryListAllNotes(ctx, s.tx)
}

func (s *txStore) UpdateNote(ctx context.Context, note *model.Note) error {
	return queryUpdateNote(ctx, s.tx, note)
}

func (s *txStore) DeleteNote(ctx context.Context, id int64) error {
	return queryDeleteNote(ctx, s.tx, id)
}

func (s *txStore) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return querySlugTaken(ctx, s.tx, slug)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
