package dto

import "time"

// AddEntryRequest is the JSON body for POST /collections.
type AddEntryRequest struct {
	ExternalID string  `json:"externalId" binding:"required,min=1,max=100"`
	Title      string  `json:"title" binding:"required,min=1,max=255"`
	Number     *int    `json:"number"`
	ImageURL   *string `json:"imageUrl"`
	Status     *string `json:"status" binding:"omitempty,max=50"`
}

// UpdateEntryRequest is the JSON body for PUT /collections/:externalId.
// Replace semantics: omitting status resets it to the default, omitting
// note clears it. Callers must resend fields they want to keep.
type UpdateEntryRequest struct {
	Status *string `json:"status" binding:"omitempty,max=50"`
	Note   *string `json:"note"`
}

// EntryResponse is a collection entry as returned to the owner.
type EntryResponse struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"externalId"`
	Title      string    `json:"title"`
	Number     *int      `json:"number"`
	ImageURL   *string   `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     string    `json:"status"`
	Note       *string   `json:"note"`
}

// CheckResponse is the body of GET /collections/check/:externalId.
// Item is null when the entry is not in the caller's collection.
type CheckResponse struct {
	InCollection bool           `json:"inCollection"`
	Item         *EntryResponse `json:"item"`
}
