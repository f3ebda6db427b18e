package models

// UserLanguage is a locale the account contributes to, with an optional
// accent.
type UserLanguage struct {
	Locale string `json:"locale"`
	Accent string `json:"accent,omitempty"`
}

// UserClient is the account profile of an authenticated contributor, or the
// anonymous client record listed by user_clients.
type UserClient struct {
	ClientID             string         `json:"client_id,omitempty"`
	Email                string         `json:"email,omitempty"`
	Username             string         `json:"username,omitempty"`
	Age                  string         `json:"age,omitempty"`
	Gender               string         `json:"gender,omitempty"`
	Locales              []UserLanguage `json:"locales,omitempty"`
	VisibleInLeaderboard *bool          `json:"visible,omitempty"`
	AvatarURL            string         `json:"avatar_url,omitempty"`
	AvatarClipURL        string         `json:"avatar_clip_url,omitempty"`
	ClipsCount           int            `json:"clips_count,omitempty"`
	VotesCount           int            `json:"votes_count,omitempty"`
	BasketToken          string         `json:"basket_token,omitempty"`
}

// AvatarKind selects the avatar source.
type AvatarKind string

const (
	AvatarGravatar AvatarKind = "gravatar"
	AvatarFile     AvatarKind = "file"
	AvatarDefault  AvatarKind = "default"
)

// AvatarResult is the decoded answer of an avatar upload.
type AvatarResult struct {
	// State is "uploaded", "not_found" or "failed" depending on the backend
	// outcome.
	State string `json:"state"`
}

// NewsletterResult is what SubscribeToNewsletter yields instead of failing.
type NewsletterResult struct {
	// Failure holds the classified failure, or nil on success.
	Failure error
}
