package domain

import "time"

// Item is an inventory record. Every item has exactly one owner and is only
// reachable through that owner's authenticated session.
type Item struct {
	ID        string
	OwnerID   string
	Name      string
	Model     *string
	Serial    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
