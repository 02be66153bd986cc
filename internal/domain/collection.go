package domain

import "time"

// DefaultStatus is applied when a caller adds or updates an entry without
// supplying a status. The field itself is an opaque string.
const DefaultStatus = "in_collection"

// CollectionEntry is one comic in a user's collection. The pair
// (UserID, ExternalID) is unique: a user cannot add the same catalog
// item twice.
type CollectionEntry struct {
	ID         int64
	UserID     int64
	ExternalID string
	Title      string
	Number     *int
	ImageURL   *string
	CreatedAt  time.Time
	Status     string
	Note       *string
}
