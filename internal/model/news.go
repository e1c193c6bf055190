package model

import "time"

// News is a public article. News items are unowned; anyone may read them.
// Date defaults to creation time but is an explicit input so older items
// can be inserted with their original publication date.
type News struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`

	// Populated by detail queries, not stored on the news table.
	Comments []*Comment `json:"comments,omitempty"`
}

// NewsFilter narrows and pages a news listing. The listing order is fixed:
// newest first by Date.
type NewsFilter struct {
	Limit  int
	Offset int
}
