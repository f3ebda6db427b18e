package client

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/voice-gateway/internal/app"
	"github.com/MKhiriev/voice-gateway/internal/gateway"
	"github.com/MKhiriev/voice-gateway/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid arguments")
)

type command struct {
	usage string
	run   func(ctx context.Context, a *App, p printer, args []string) error
}

var commands = map[string]command{
	"whoami":      {usage: "whoami", run: runWhoAmI},
	"sentences":   {usage: "sentences [count]", run: runSentences},
	"clips":       {usage: "clips [count]", run: runClips},
	"vote":        {usage: "vote <clip-id> yes|no", run: runVote},
	"skip":        {usage: "skip <sentence-id>", run: runSkip},
	"upload":      {usage: "upload <sentence-id> <audio-file> <sentence>", run: runUpload},
	"stats":       {usage: "stats", run: runStats},
	"languages":   {usage: "languages", run: runLanguages},
	"requested":   {usage: "requested", run: runRequested},
	"request":     {usage: "request <language>", run: runRequest},
	"leaderboard": {usage: "leaderboard clip|vote", run: runLeaderboard},
	"activity":    {usage: "activity you|everyone", run: runActivity},
	"messages":    {usage: "messages <locale>", run: runMessages},
	"document":    {usage: "document privacy|terms", run: runDocument},
	"login":       {usage: "login <session-token>", run: runLogin},
	"logout":      {usage: "logout", run: runLogout},
	"account":     {usage: "account", run: runAccount},
	"claim":       {usage: "claim", run: runClaim},
	"goals":       {usage: "goals", run: runGoals},
	"awards":      {usage: "awards", run: runAwards},
	"subscribe":   {usage: "subscribe <email>", run: runSubscribe},
	"report":      {usage: "report sentence|clip <id> <reason>...", run: runReport},
}

// Usage lists every command.
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		b.WriteString("  " + commands[name].usage + "\n")
	}
	return b.String()
}

// Run executes one command. A rejected session is reported and the client
// is reset before the error is returned.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrUsage, Usage())
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, args[0], Usage())
	}

	p := printer{out: a.out}
	err := cmd.run(ctx, a, p, args[1:])
	switch {
	case errors.Is(err, ErrUsage):
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	case errors.Is(err, gateway.ErrSessionExpired):
		p.failure(errors.New(app.MsgSessionExpired))
		return err
	case err != nil:
		p.failure(err)
		return err
	}
	return nil
}

func countArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, ErrUsage
	}
	return n, nil
}

func runWhoAmI(_ context.Context, a *App, p printer, _ []string) error {
	u := a.User()
	p.field("client id", u.ClientID)
	if u.Authenticated() {
		p.field("account", u.Account.Subject)
		if u.Account.Email != "" {
			p.field("email", u.Account.Email)
		}
		if !u.Account.ExpiresAt.IsZero() {
			p.field("expires", u.Account.ExpiresAt.Format("2006-01-02 15:04"))
		}
	}
	if locale := a.Gateway().Locale(); locale != "" {
		p.field("locale", locale)
	}
	return nil
}

func runSentences(ctx context.Context, a *App, p printer, args []string) error {
	count, err := countArg(args)
	if err != nil {
		return err
	}

	sentences, err := a.Gateway().FetchRandomSentences(ctx, count)
	if err != nil {
		return err
	}

	p.title("Sentences")
	for _, s := range sentences {
		p.line("%s  %s", labelStyle.Render(s.ID), s.Text)
	}
	return nil
}

func runClips(ctx context.Context, a *App, p printer, args []string) error {
	count, err := countArg(args)
	if err != nil {
		return err
	}

	clips, err := a.Gateway().FetchRandomClips(ctx, count)
	if err != nil {
		return err
	}

	p.title("Clips")
	for _, c := range clips {
		p.box(c.Sentence.Text, labelStyle.Render("id "+c.ID), c.AudioSrc)
	}
	return nil
}

func runVote(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}

	var valid bool
	switch args[1] {
	case "yes":
		valid = true
	case "no":
	default:
		return ErrUsage
	}

	result, err := a.Gateway().SaveVote(ctx, args[0], valid)
	if err != nil {
		return err
	}
	p.field("voted", result.Glob)
	return nil
}

func runSkip(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := a.Gateway().SkipSentence(ctx, args[0]); err != nil {
		return err
	}
	p.line("skipped %s", args[0])
	return nil
}

func runUpload(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}

	audio, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	result, err := a.Gateway().UploadClip(ctx, models.ClipUpload{
		Audio:       audio,
		ContentType: audioContentType(args[1], audio),
		SentenceID:  args[0],
		Sentence:    strings.Join(args[2:], " "),
	})
	if errors.Is(err, gateway.ErrClipSave) {
		return fmt.Errorf("%s: %w", app.MsgClipSaveFailed, err)
	}
	if err != nil {
		return err
	}

	p.field("uploaded", result.FilePrefix)
	return nil
}

func audioContentType(path string, audio []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(audio)
}

func runStats(ctx context.Context, a *App, p printer, _ []string) error {
	gw := a.Gateway()

	hours, err := gw.FetchValidatedHours(ctx)
	if err != nil {
		return err
	}
	clips, err := gw.FetchDailyClipsCount(ctx)
	if err != nil {
		return err
	}
	votes, err := gw.FetchDailyVotesCount(ctx)
	if err != nil {
		return err
	}

	p.title("Today")
	p.field("validated hours", strconv.FormatFloat(hours, 'f', 1, 64))
	p.field("clips", clips)
	p.field("votes", votes)
	return nil
}

func runLanguages(ctx context.Context, a *App, p printer, _ []string) error {
	stats, err := a.Gateway().FetchLanguageStats(ctx)
	if err != nil {
		return err
	}

	p.title("Launched")
	for _, l := range stats.Launched {
		p.line("  %-8s %6.1fh %6d speakers", l.Locale, l.Seconds/3600, l.Speakers)
	}
	p.title("In progress")
	for _, l := range stats.InProgress {
		p.line("  %-8s %5.1f%% localized %6d sentences", l.Locale, l.Localized, l.SentencesCount)
	}
	return nil
}

func runRequested(ctx context.Context, a *App, p printer, _ []string) error {
	languages, err := a.Gateway().FetchRequestedLanguages(ctx)
	if err != nil {
		return err
	}
	p.title("Requested languages")
	p.list(languages)
	return nil
}

func runRequest(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	language := strings.Join(args, " ")
	if err := a.Gateway().RequestLanguage(ctx, language); err != nil {
		return err
	}
	p.line("requested %s", language)
	return nil
}

func runLeaderboard(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	kind := models.LeaderboardKind(args[0])
	if kind != models.LeaderboardClips && kind != models.LeaderboardVotes {
		return ErrUsage
	}

	board, err := a.Gateway().FetchLeaderboard(ctx, kind, nil)
	if err != nil {
		return err
	}
	p.line("%s", board)
	return nil
}

func runActivity(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	from := models.ContributionSource(args[0])
	if from != models.ContributionsByYou && from != models.ContributionsByEveryone {
		return ErrUsage
	}

	points, err := a.Gateway().FetchContributionActivity(ctx, from)
	if err != nil {
		return err
	}
	for _, dp := range points {
		p.line("%s %d", dp.Date.Format("2006-01-02"), dp.Value)
	}
	return nil
}

func runMessages(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	text, err := a.Gateway().FetchLocaleMessages(ctx, args[0])
	if err != nil {
		return err
	}
	p.line("%s", text)
	return nil
}

func runDocument(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	html, err := a.Gateway().FetchDocument(ctx, models.Document(args[0]))
	if err != nil {
		return err
	}
	p.line("%s", html)
	return nil
}

func runLogin(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	u, err := a.SignIn(ctx, args[0])
	if err != nil {
		return err
	}
	p.field("signed in", u.Account.Subject)
	return nil
}

func runLogout(ctx context.Context, a *App, p printer, _ []string) error {
	if err := a.SignOut(ctx); err != nil {
		return err
	}
	p.line("signed out")
	return nil
}

func runAccount(ctx context.Context, a *App, p printer, _ []string) error {
	account, err := a.Gateway().FetchAccount(ctx)
	if err != nil {
		return err
	}
	if account == nil {
		p.line(app.MsgNoAccount)
		return nil
	}

	p.title(account.Username)
	p.field("email", account.Email)
	p.field("clips", account.ClipsCount)
	p.field("votes", account.VotesCount)
	for _, l := range account.Locales {
		p.field("locale", l.Locale)
	}
	return nil
}

func runClaim(ctx context.Context, a *App, p printer, _ []string) error {
	if !a.User().Authenticated() {
		return errors.New(app.MsgSignInFirst)
	}
	if err := a.Gateway().ClaimAccount(ctx); err != nil {
		return err
	}
	p.line("contributions of %s claimed", a.User().ClientID)
	return nil
}

func runGoals(ctx context.Context, a *App, p printer, _ []string) error {
	goals, err := a.Gateway().FetchGoals(ctx)
	if err != nil {
		return err
	}
	p.line("%s", goals)
	return nil
}

func runAwards(ctx context.Context, a *App, p printer, _ []string) error {
	gw := a.Gateway()
	awards, err := gw.FetchAwards(ctx)
	if err != nil {
		return err
	}
	p.line("%s", awards)
	return gw.SeenAwards(ctx, models.AwardSeen)
}

func runSubscribe(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	result, err := a.Gateway().SubscribeToNewsletter(ctx, args[0])
	if err != nil {
		return err
	}
	if result.Failure != nil {
		p.failure(fmt.Errorf("%s: %w", app.MsgSubscriptionFailed, result.Failure))
		return nil
	}
	p.line("subscribed %s", args[0])
	return nil
}

func runReport(ctx context.Context, a *App, p printer, args []string) error {
	if len(args) < 3 || (args[0] != "sentence" && args[0] != "clip") {
		return ErrUsage
	}

	err := a.Gateway().Report(ctx, models.Report{Kind: args[0], ID: args[1], Reasons: args[2:]})
	if err != nil {
		return err
	}
	p.line("reported %s %s", args[0], args[1])
	return nil
}
