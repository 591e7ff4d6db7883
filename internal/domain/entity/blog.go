package entity

import "time"

// AboutTitle marks the special blog entry backing the /about page. It is
// excluded from index listings and counts.
const AboutTitle = "__about__"

// Blog is a published post. Author fields are denormalized at creation time
// so listings need no join.
type Blog struct {
	ID        string
	UserID    string
	UserName  string
	UserImage string
	CatID     string // empty when uncategorized
	CatName   string
	Title     string
	Summary   string
	Content   string
	ViewCount int64
	CreatedAt time.Time
}
