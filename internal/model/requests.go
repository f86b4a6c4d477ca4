package model

// CreateChannelRequest is the API request body for creating a channel.
// Name has no server-side requirement; an absent name becomes "".
type CreateChannelRequest struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// CreateVideoRequest is the API request body for registering video metadata.
// The raw asset must already live on the external media host.
type CreateVideoRequest struct {
	CloudinaryPublicID *string  `json:"cloudinary_public_id"`
	VideoURL           string   `json:"video_url"`
	Thumbnail          string   `json:"thumbnail"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ChannelID          *string  `json:"channelId"`
	Duration           *float64 `json:"duration"`
}

// CommentRequest is the API request body for posting a comment.
type CommentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// InitResponse is the full catalog snapshot served to clients on load.
type InitResponse struct {
	Channels []Channel `json:"channels"`
	Videos   []Video   `json:"videos"`
}

// StatsResponse is the API response for aggregate catalog statistics.
type StatsResponse struct {
	TotalChannels int `json:"totalChannels"`
	TotalVideos   int `json:"totalVideos"`
	TotalComments int `json:"totalComments"`
	TotalViews    int `json:"totalViews"`
	TotalLikes    int `json:"totalLikes"`
	TotalDislikes int `json:"totalDislikes"`
}
