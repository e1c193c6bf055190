package postgres

import (
	"database/sql"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanSession(row scannable) (*model.Session, error) {
	var s model.Session
	err := row.Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanNews(row scannable) (*model.News, error) {
	var n model.News
	err := row.Scan(&n.ID, &n.Title, &n.Text, &n.Date)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// scanNewsWithTotal scans a news row prefixed with a COUNT(*) OVER() column.
func scanNewsWithTotal(row scannable) (*model.News, int, error) {
	var n model.News
	var total int
	err := row.Scan(&total, &n.ID, &n.Title, &n.Text, &n.Date)
	if err != nil {
		return nil, 0, err
	}
	return &n, total, nil
}

func scanComment(row scannable) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComments(rows *sql.Rows) ([]*model.Comment, error) {
	var comments []*model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func scanNote(row scannable) (*model.Note, error) {
	var n model.Note
	err := row.Scan(&n.ID, &n.Title, &n.Text, &n.Slug, &n.AuthorID, &n.Author)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func scanNotes(rows *sql.Rows) ([]*model.Note, error) {
	var notes []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}
