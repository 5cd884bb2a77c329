package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cfq/codeforces"
	"cfq/internal/config"
	"cfq/internal/errx"
	"cfq/internal/output"
)

// App wires the Codeforces client to the printer. Each command performs one API call, turns
// the three-state result into an error the CLI can map to an exit code, and prints the value.
type App struct {
	ConfigStore config.Store
	Config      config.Config
	Client      codeforces.Client
	Output      output.Printer
}

type UserStatusOptions struct {
	Handle string
	From   int // 1-based; 0 means the API default
	Count  int // 0 means Config.DefaultCount
}

type RatedListOptions struct {
	ActiveOnly     bool
	IncludeRetired bool
	ContestID      int64
	Limit          int // 0 means all
}

type ContestListOptions struct {
	Gym   bool
	Phase codeforces.Phase // empty means every phase
	Limit int              // 0 means all
}

type StandingsOptions struct {
	ContestID      int64
	From           int
	Count          int
	Handles        []string
	Room           int
	ShowUnofficial bool
}

type ContestStatusOptions struct {
	ContestID int64
	Handle    string
	From      int
	Count     int
}

type ProblemsOptions struct {
	Tags           []string
	ProblemsetName string
}

func New(deps App) *App {
	return &deps
}

func (a *App) UserInfo(ctx context.Context, handles []string) error {
	res, err := a.Client.UserInfo(ctx, handles...)
	users, err := unwrap(codeforces.MethodUserInfo, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintUsers(ctx, users)
}

func (a *App) UserRating(ctx context.Context, handle string) error {
	res, err := a.Client.UserRating(ctx, handle)
	changes, err := unwrap(codeforces.MethodUserRating, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintRatingChanges(ctx, changes)
}

func (a *App) UserStatus(ctx context.Context, opts UserStatusOptions) error {
	count := opts.Count
	if count == 0 {
		count = a.Config.DefaultCount
	}
	params := optionalParams(
		intParam("from", opts.From),
		intParam("count", count),
	)
	res, err := a.Client.UserStatus(ctx, opts.Handle, params...)
	subs, err := unwrap(codeforces.MethodUserStatus, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintSubmissions(ctx, subs)
}

func (a *App) UserBlogEntries(ctx context.Context, handle string) error {
	res, err := a.Client.UserBlogEntries(ctx, handle)
	entries, err := unwrap(codeforces.MethodUserBlogEntries, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintBlogEntries(ctx, entries)
}

func (a *App) UserRatedList(ctx context.Context, opts RatedListOptions) error {
	params := optionalParams(
		boolParam("includeRetired", opts.IncludeRetired),
		int64Param("contestId", opts.ContestID),
	)
	res, err := a.Client.UserRatedList(ctx, opts.ActiveOnly, params...)
	users, err := unwrap(codeforces.MethodUserRatedList, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintUsers(ctx, limit(users, opts.Limit))
}

func (a *App) BlogView(ctx context.Context, blogEntryID int64) error {
	res, err := a.Client.BlogEntryView(ctx, blogEntryID)
	entry, err := unwrap(codeforces.MethodBlogEntryView, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintBlogEntry(ctx, entry)
}

func (a *App) BlogComments(ctx context.Context, blogEntryID int64) error {
	res, err := a.Client.BlogEntryComments(ctx, blogEntryID)
	comments, err := unwrap(codeforces.MethodBlogEntryComments, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintComments(ctx, comments)
}

func (a *App) ContestList(ctx context.Context, opts ContestListOptions) error {
	res, err := a.Client.ContestList(ctx, opts.Gym)
	contests, err := unwrap(codeforces.MethodContestList, res, err)
	if err != nil {
		return err
	}
	if opts.Phase != "" {
		filtered := contests[:0]
		for _, c := range contests {
			if strings.EqualFold(string(c.Phase), string(opts.Phase)) {
				filtered = append(filtered, c)
			}
		}
		contests = filtered
	}
	return a.Output.PrintContests(ctx, limit(contests, opts.Limit))
}

func (a *App) ContestHacks(ctx context.Context, contestID int64) error {
	res, err := a.Client.ContestHacks(ctx, contestID)
	hacks, err := unwrap(codeforces.MethodContestHacks, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintHacks(ctx, hacks)
}

func (a *App) ContestRatingChanges(ctx context.Context, contestID int64) error {
	res, err := a.Client.ContestRatingChanges(ctx, contestID)
	changes, err := unwrap(codeforces.MethodContestRatingChanges, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintRatingChanges(ctx, changes)
}

func (a *App) ContestStandings(ctx context.Context, opts StandingsOptions) error {
	params := optionalParams(
		intParam("from", opts.From),
		intParam("count", opts.Count),
		listParam("handles", opts.Handles),
		intParam("room", opts.Room),
		boolParam("showUnofficial", opts.ShowUnofficial),
	)
	res, err := a.Client.ContestStandings(ctx, opts.ContestID, params...)
	standings, err := unwrap(codeforces.MethodContestStandings, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintStandings(ctx, standings)
}

func (a *App) ContestStatus(ctx context.Context, opts ContestStatusOptions) error {
	params := optionalParams(
		stringParam("handle", opts.Handle),
		intParam("from", opts.From),
		intParam("count", opts.Count),
	)
	res, err := a.Client.ContestStatus(ctx, opts.ContestID, params...)
	subs, err := unwrap(codeforces.MethodContestStatus, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintSubmissions(ctx, subs)
}

func (a *App) ProblemsetProblems(ctx context.Context, opts ProblemsOptions) error {
	params := optionalParams(
		listParam("tags", opts.Tags),
		stringParam("problemsetName", opts.ProblemsetName),
	)
	res, err := a.Client.ProblemsetProblems(ctx, params...)
	ps, err := unwrap(codeforces.MethodProblemsetProblems, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintProblemset(ctx, ps)
}

func (a *App) ProblemsetRecentStatus(ctx context.Context, count int, problemsetName string) error {
	if count == 0 {
		count = a.Config.DefaultCount
	}
	res, err := a.Client.ProblemsetRecentStatus(ctx, count, problemsetName)
	subs, err := unwrap(codeforces.MethodProblemsetRecentStatus, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintSubmissions(ctx, subs)
}

func (a *App) RecentActions(ctx context.Context, maxCount int) error {
	if maxCount == 0 {
		maxCount = a.Config.DefaultCount
	}
	res, err := a.Client.RecentActions(ctx, maxCount)
	actions, err := unwrap(codeforces.MethodRecentActions, res, err)
	if err != nil {
		return err
	}
	return a.Output.PrintRecentActions(ctx, actions)
}

// ConfigInit writes the current configuration to the store. An existing file is kept unless
// force is set.
func (a *App) ConfigInit(ctx context.Context, force bool) error {
	if a.ConfigStore == nil {
		return fmt.Errorf("no config store")
	}
	if !force {
		_, err := a.ConfigStore.Load(ctx)
		switch {
		case err == nil:
			return errx.Usage("config already exists; use --force to overwrite")
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	if err := a.ConfigStore.Save(ctx, a.Config); err != nil {
		return err
	}
	return a.Output.PrintConfig(ctx, a.Config)
}

// ConfigShow prints the effective configuration: defaults, then file, then environment and
// flags.
func (a *App) ConfigShow(ctx context.Context) error {
	return a.Output.PrintConfig(ctx, a.Config)
}

// unwrap turns a client call's three-state result into a value or an error that errx.ExitCode
// understands.
func unwrap[T any](method string, res codeforces.Result[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	switch res.Kind() {
	case codeforces.KindOK:
		return res.Value, nil
	case codeforces.KindRejected:
		return zero, errx.Rejected(method, res.Comment)
	default:
		return zero, errx.Unreachable(method, res.Cause)
	}
}

func optionalParams(params ...*codeforces.Parameter) []codeforces.Parameter {
	out := make([]codeforces.Parameter, 0, len(params))
	for _, p := range params {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func intParam(key string, v int) *codeforces.Parameter {
	if v == 0 {
		return nil
	}
	p := codeforces.Param(key, v)
	return &p
}

func int64Param(key string, v int64) *codeforces.Parameter {
	if v == 0 {
		return nil
	}
	p := codeforces.Param(key, v)
	return &p
}

func boolParam(key string, v bool) *codeforces.Parameter {
	if !v {
		return nil
	}
	p := codeforces.Param(key, v)
	return &p
}

func stringParam(key string, v string) *codeforces.Parameter {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	p := codeforces.Param(key, v)
	return &p
}

func listParam(key string, v []string) *codeforces.Parameter {
	cleaned := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	p := codeforces.Param(key, cleaned)
	return &p
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
