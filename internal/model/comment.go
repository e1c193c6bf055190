package model

import "time"

// Comment is a reader's comment on a news item. Only the author may edit
// or delete it. CreatedAt is set by the caller at insert time; it is never
// rewritten afterwards.
type Comment struct {
	ID        int64     `json:"id"`
	NewsID    int64     `json:"news_id"`
	AuthorID  int64     `json:"author_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
