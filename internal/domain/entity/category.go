package entity

import "time"

// Category groups blogs; names are unique.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
