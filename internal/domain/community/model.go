package community

import "time"

type Post struct {
	ID       string
	AuthorID string

	Title    string
	Body     string
	ImageURL string

	CreatedAt time.Time
}

type Comment struct {
	ID       string
	PostID   string
	AuthorID string
	Body     string

	CreatedAt time.Time
}
