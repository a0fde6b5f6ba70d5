// Package entity holds the small projections shared by several features.
package entity

// UserSummary is the public face of a user embedded in other payloads.
type UserSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// BookSummary is a book without its poster.
type BookSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Quote       string `json:"quote"`
	Genre       string `json:"genre"`
}
