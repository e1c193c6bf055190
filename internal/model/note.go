package model

// SlugWarning is appended to the offending slug in the field error returned
// when a note submission reuses an existing slug.
const SlugWarning = " - this slug is already taken, pick a unique value."

// Note is a private note owned by exactly one user. Slug is unique across
// all notes; when omitted at creation it is derived from the title.
type Note struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Slug     string `json:"slug"`
	AuthorID int64  `json:"author_id"`
	Author   string `json:"author,omitempty"`
}
