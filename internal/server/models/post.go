package models

// Post belongs to exactly one user. Post ids come from a single sequence
// shared by all users.
type Post struct {
	ID       int64  `json:"post_id"`
	UserID   int64  `json:"user_id"`
	Contents string `json:"contents"`
}
