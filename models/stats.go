package models

import (
	"encoding/json"
	"time"
)

// DailyStat is one data point of the per-locale contribution chart.
type DailyStat struct {
	Date  time.Time `json:"date"`
	Total int       `json:"total"`
	Valid int       `json:"valid"`
}

// Datapoint is a generic dated value used by voice and activity charts.
type Datapoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// ContributionSource selects whose activity is charted.
type ContributionSource string

const (
	ContributionsByYou      ContributionSource = "you"
	ContributionsByEveryone ContributionSource = "everyone"
)

// InProgressLanguage is a locale still being localized.
type InProgressLanguage struct {
	Locale         string  `json:"locale"`
	Localized      float64 `json:"localizedPercentage"`
	SentencesCount int     `json:"sentencesCount"`
	SpeakersCount  int     `json:"speakersCount"`
}

// LaunchedLanguage is a locale open for contributions.
type LaunchedLanguage struct {
	Locale   string  `json:"locale"`
	Seconds  float64 `json:"seconds"`
	Speakers int     `json:"speakers"`
}

// LanguageStats groups the launched and in-progress locales.
type LanguageStats struct {
	InProgress []InProgressLanguage `json:"inProgress"`
	Launched   []LaunchedLanguage   `json:"launched"`
}

// LanguageRequest asks for a new language to be added.
type LanguageRequest struct {
	Language string `json:"language"`
}

// LeaderboardKind selects the clip or the vote leaderboard.
type LeaderboardKind string

const (
	LeaderboardClips LeaderboardKind = "clip"
	LeaderboardVotes LeaderboardKind = "vote"
)

// Leaderboard rows are owned by the UI; the gateway hands them over
// undecoded.
type Leaderboard = json.RawMessage

// LeaderboardCursor is an opaque pagination cursor. A nil cursor requests
// the first page.
type LeaderboardCursor = json.RawMessage

// Goals and Awards payloads are owned by the UI as well.
type (
	Goals  = json.RawMessage
	Awards = json.RawMessage
)

// Goal describes a custom contribution goal.
type Goal struct {
	Type         string `json:"type"`
	DaysInterval int    `json:"daysInterval"`
	Amount       int    `json:"amount"`
}

// AwardKind selects which award flag SeenAwards acknowledges.
type AwardKind string

const (
	AwardSeen         AwardKind = "award"
	AwardNotification AwardKind = "notification"
)

// Report flags a sentence or a clip as problematic.
type Report struct {
	Kind    string   `json:"kind"`
	ID      string   `json:"id"`
	Reasons []string `json:"reasons"`
}

// Document names a legal document served as HTML.
type Document string

const (
	DocumentPrivacy Document = "privacy"
	DocumentTerms   Document = "terms"
)
