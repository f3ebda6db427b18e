package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/voice-gateway/models"
)

func countQuery(count int) string {
	if count < 1 {
		count = 1
	}
	return "?count=" + strconv.Itoa(count)
}

// FetchRandomSentences returns up to count sentences of the current locale
// to record. count below 1 is treated as 1.
func (g *Gateway) FetchRandomSentences(ctx context.Context, count int) ([]models.Sentence, error) {
	var sentences []models.Sentence
	err := g.fetchJSON(ctx, Request{Path: g.LocaleRoot() + "/sentences" + countQuery(count)}, &sentences)
	return sentences, err
}

// FetchRandomClips returns up to count clips of the current locale to
// validate. count below 1 is treated as 1.
func (g *Gateway) FetchRandomClips(ctx context.Context, count int) ([]models.Clip, error) {
	var clips []models.Clip
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + countQuery(count)}, &clips)
	return clips, err
}

// UploadClip posts a recording as the raw body. The sentence travels
// percent-encoded in the "sentence" header and its id in "sentence_id".
// A backend storage failure surfaces as [ErrClipSave].
func (g *Gateway) UploadClip(ctx context.Context, clip models.ClipUpload) (models.ClipUploadResult, error) {
	var result models.ClipUploadResult
	err := g.fetchJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   g.ClipRoot(),
		Headers: map[string]string{
			"sentence":    encodeURIComponent(clip.Sentence),
			"sentence_id": clip.SentenceID,
		},
		Body: BinaryBody(clip.Audio, clip.ContentType),
	}, &result)
	return result, err
}

// SaveVote records whether the clip matches its sentence.
func (g *Gateway) SaveVote(ctx context.Context, clipID string, isValid bool) (models.VoteResult, error) {
	var result models.VoteResult
	err := g.fetchJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   g.ClipRoot() + "/" + url.PathEscape(clipID) + "/votes",
		Body:   JSONBody(models.Vote{IsValid: isValid}),
	}, &result)
	return result, err
}

// SkipSentence marks a sentence as skipped by this client.
func (g *Gateway) SkipSentence(ctx context.Context, sentenceID string) error {
	_, err := g.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   g.APIRoot() + "/skipped_sentences/" + url.PathEscape(sentenceID),
	})
	return err
}

func (g *Gateway) FetchValidatedHours(ctx context.Context) (float64, error) {
	var hours float64
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + "/validated_hours"}, &hours)
	return hours, err
}

func (g *Gateway) FetchDailyClipsCount(ctx context.Context) (int, error) {
	var count int
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + "/daily_count"}, &count)
	return count, err
}

func (g *Gateway) FetchDailyVotesCount(ctx context.Context) (int, error) {
	var count int
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + "/votes/daily_count"}, &count)
	return count, err
}

func (g *Gateway) FetchClipsStats(ctx context.Context) ([]models.DailyStat, error) {
	var stats []models.DailyStat
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + "/stats"}, &stats)
	return stats, err
}

func (g *Gateway) FetchClipVoices(ctx context.Context) ([]models.Datapoint, error) {
	var voices []models.Datapoint
	err := g.fetchJSON(ctx, Request{Path: g.ClipRoot() + "/voices"}, &voices)
	return voices, err
}

// FetchLeaderboard returns one page of the clip or vote leaderboard. A nil
// cursor asks for the page around the current user; otherwise the cursor is
// sent back as compact JSON in the query string.
func (g *Gateway) FetchLeaderboard(ctx context.Context, kind models.LeaderboardKind, cursor models.LeaderboardCursor) (models.Leaderboard, error) {
	path := g.ClipRoot()
	if kind == models.LeaderboardVotes {
		path += "/votes"
	}
	path += "/leaderboard"

	if len(cursor) > 0 {
		var compact bytes.Buffer
		if err := json.Compact(&compact, cursor); err != nil {
			return nil, fmt.Errorf("encode leaderboard cursor: %w", err)
		}
		path += "?cursor=" + url.QueryEscape(compact.String())
	}

	var board models.Leaderboard
	err := g.fetchJSON(ctx, Request{Path: path}, &board)
	return board, err
}

// FetchContributionActivity returns the dated contribution counts of the
// current locale, either of this user or of everyone.
func (g *Gateway) FetchContributionActivity(ctx context.Context, from models.ContributionSource) ([]models.Datapoint, error) {
	var points []models.Datapoint
	err := g.fetchJSON(ctx, Request{
		Path: g.LocaleRoot() + "/contribution_activity?from=" + url.QueryEscape(string(from)),
	}, &points)
	return points, err
}
