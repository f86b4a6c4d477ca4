package model

import "time"

// Catalog is the root document: every channel and video the service knows
// about. It is the unit of persistence — the store reads and rewrites it
// whole on every operation.
type Catalog struct {
	Channels []Channel `json:"channels"`
	Videos   []Video   `json:"videos"`
}

// Channel groups videos under a name and artwork.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Video is the metadata record for an asset already uploaded to the external
// media host. Optional fields are pointers so absent values round-trip as
// JSON null, matching the wire format clients already depend on.
type Video struct {
	ID                 string    `json:"id"`
	CloudinaryPublicID *string   `json:"cloudinary_public_id"`
	VideoURL           string    `json:"video_url"`
	Thumbnail          string    `json:"thumbnail"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ChannelID          *string   `json:"channelId"`
	Duration           *float64  `json:"duration"`
	Views              int       `json:"views"`
	Likes              int       `json:"likes"`
	Dislikes           int       `json:"dislikes"`
	Comments           []Comment `json:"comments"`
	PublishedAt        time.Time `json:"publishedAt"`
}

// Comment is append-only; comments are never edited or deleted.
type Comment struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// UntitledPlaceholder is the title assigned to videos created without one
// ("untitled" in the product's primary locale).
const UntitledPlaceholder = "بدون عنوان"
