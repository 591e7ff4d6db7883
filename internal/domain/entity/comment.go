package entity

import "time"

// Comment is a reader comment on a blog. Author fields are denormalized.
type Comment struct {
	ID        string
	BlogID    string
	UserID    string
	UserName  string
	UserImage string
	Content   string
	CreatedAt time.Time
}
