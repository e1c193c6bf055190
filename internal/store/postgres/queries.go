package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// userColumns is the column list used for SELECT statements on the users table.
const userColumns = `id, username, password_hash, created_at`

// commentColumns is the column list for comment SELECTs, joined with the
// author's username.
const commentColumns = `c.id, c.news_id, c.author_id, u.username, c.text, c.created_at`

// noteColumns is the column list for note SELECTs, joined with the author's
// username.
const noteColumns = `n.id, n.title, n.text, n.slug, n.author_id, u.username`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateUser(ctx context.Context, db executor, u *model.User) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		u.Username, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	return mapUniqueViolation(err)
}

func queryGetUserByID(ctx context.Context, db executor, id int64) (*model.User, error) {
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func queryGetUserByUsername(ctx context.Context, db executor, username string) (*model.User, error) {
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func queryCreateSession(ctx context.Context, db executor, s *model.Session) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		s.Token, s.UserID, s.CreatedAt, s.ExpiresAt,
	)
	return err
}

func queryGetSession(ctx context.Context, db executor, token string) (*model.Session, error) {
	row := db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM sessions WHERE token = $1`, token)
	return scanSession(row)
}

func queryDeleteSession(ctx context.Context, db executor, token string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func queryDeleteUserSessions(ctx context.Context, db executor, userID int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func queryCreateNews(ctx context.Context, db executor, n *model.News) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO news (title, text, date)
		VALUES ($1, $2, $3)
		RETURNING id`,
		n.Title, n.Text, n.Date,
	).Scan(&n.ID)
}

func queryGetNews(ctx context.Context, db executor, id int64) (*model.News, error) {
	row := db.QueryRowContext(ctx, `SELECT id, title, text, date FROM news WHERE id = $1`, id)
	n, err := scanNews(row)
	if err != nil {
		return nil, err
	}

	// Attach the comment thread, oldest first.
	comments, err := queryListComments(ctx, db, id)
	if err != nil {
		return nil, err
	}
	n.Comments = comments

	return n, nil
}

func queryListNews(ctx context.Context, db executor, filter model.NewsFilter) ([]*model.News, int, error) {
	// Single query with COUNT(*) OVER() to get total and rows atomically.
	// Newest first; id breaks date ties so paging stays stable.
	query := `SELECT COUNT(*) OVER() AS total_count, id, title, text, date
		FROM news ORDER BY date DESC, id DESC`
	var args []any
	argIdx := 0
	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var items []*model.News
	var total int
	for rows.Next() {
		n, t, err := scanNewsWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan news: %w", err)
		}
		total = t
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan news: %w", err)
	}

	// COUNT(*) OVER() rides on the returned rows, so an offset past the last
	// row yields no rows and no count. Fall back to a plain count.
	if len(items) == 0 && filter.Offset > 0 {
		row := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`)
		if err := row.Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count news: %w", err)
		}
	}

	return items, total, nil
}

func queryCreateComment(ctx context.Context, db executor, c *model.Comment) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO comments (news_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.NewsID, c.AuthorID, c.Text, c.CreatedAt,
	).Scan(&c.ID)
}

func queryGetComment(ctx context.Context, db executor, id int64) (*model.Comment, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`, id)
	return scanComment(row)
}

func queryListComments(ctx context.Context, db executor, newsID int64) ([]*model.Comment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.news_id = $1
		ORDER BY c.created_at ASC, c.id ASC`,
		newsID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func queryUpdateComment(ctx context.Context, db executor, c *model.Comment) error {
	res, err := db.ExecContext(ctx, `UPDATE comments SET text = $2 WHERE id = $1`, c.ID, c.Text)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteComment(ctx context.Context, db executor, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateNote(ctx context.Context, db executor, n *model.Note) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO notes (title, text, slug, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		n.Title, n.Text, n.Slug, n.AuthorID,
	).Scan(&n.ID)
	return mapUniqueViolation(err)
}

func queryGetNoteBySlug(ctx context.Context, db executor, slug string) (*model.Note, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes n JOIN users u ON u.id = n.author_id
		WHERE n.slug = $1`, slug)
	return scanNote(row)
}

func queryListNotesByAuthor(ctx context.Context, db executor, authorID int64) ([]*model.Note, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes n JOIN users u ON u.id = n.author_id
		WHERE n.author_id = $1
		ORDER BY n.id ASC`,
		authorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func queryListAllNotes(ctx context.Context, db executor) ([]*model.Note, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes n JOIN users u ON u.id = n.author_id
		ORDER BY n.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func queryUpdateNote(ctx context.Context, db executor, n *model.Note) error {
	res, err := db.ExecContext(ctx, `
		UPDATE notes SET title = $2, text = $3, slug = $4
		WHERE id = $1`,
		n.ID, n.Title, n.Text, n.Slug,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteNote(ctx context.Context, db executor, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func querySlugTaken(ctx context.Context, db executor, slug string) (bool, error) {
	var taken bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE slug = $1)`, slug).Scan(&taken)
	if err != nil {
		return false, err
	}
	return taken, nil
}
