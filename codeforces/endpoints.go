package codeforces

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// API method names, as they appear after /api/ in the request path.
const (
	MethodBlogEntryComments      = "blogEntry.comments"
	MethodBlogEntryView          = "blogEntry.view"
	MethodContestHacks           = "contest.hacks"
	MethodContestList            = "contest.list"
	MethodContestRatingChanges   = "contest.ratingChanges"
	MethodContestStandings       = "contest.standings"
	MethodContestStatus          = "contest.status"
	MethodProblemsetProblems     = "problemset.problems"
	MethodProblemsetRecentStatus = "problemset.recentStatus"
	MethodRecentActions          = "recentActions"
	MethodUserBlogEntries        = "user.blogEntries"
	MethodUserInfo               = "user.info"
	MethodUserRatedList          = "user.ratedList"
	MethodUserRating             = "user.rating"
	MethodUserStatus             = "user.status"
)

// DefaultSubmissionCount is the page size UserSubmissions asks for when none is given.
const DefaultSubmissionCount = 200

// BlogEntryComments returns the comments of a blog entry.
func (c *HttpClient) BlogEntryComments(ctx context.Context, blogEntryID int64) (Result[[]Comment], error) {
	return call[[]Comment](ctx, c, MethodBlogEntryComments, []Parameter{
		Param("blogEntryId", blogEntryID),
	})
}

// BlogEntryView returns a blog entry in full form.
func (c *HttpClient) BlogEntryView(ctx context.Context, blogEntryID int64) (Result[BlogEntry], error) {
	return call[BlogEntry](ctx, c, MethodBlogEntryView, []Parameter{
		Param("blogEntryId", blogEntryID),
	})
}

// ContestHacks returns the hacks of a contest. Full information is available only some time
// after the contest ends.
func (c *HttpClient) ContestHacks(ctx context.Context, contestID int64, extra ...Parameter) (Result[[]Hack], error) {
	params := append([]Parameter{Param("contestId", contestID)}, extra...)
	return call[[]Hack](ctx, c, MethodContestHacks, params)
}

// ContestList returns all regular contests, or gym contests when gym is true.
func (c *HttpClient) ContestList(ctx context.Context, gym bool) (Result[[]Contest], error) {
	return call[[]Contest](ctx, c, MethodContestList, []Parameter{
		Param("gym", gym),
	})
}

// ContestRatingChanges returns the rating changes after a contest.
func (c *HttpClient) ContestRatingChanges(ctx context.Context, contestID int64) (Result[[]RatingChange], error) {
	return call[[]RatingChange](ctx, c, MethodContestRatingChanges, []Parameter{
		Param("contestId", contestID),
	})
}

// ContestStandings returns the contest, its problems and the requested part of the standings.
// Useful extras: from, count, handles, room, showUnofficial.
func (c *HttpClient) ContestStandings(ctx context.Context, contestID int64, extra ...Parameter) (Result[Standings], error) {
	params := append([]Parameter{Param("contestId", contestID)}, extra...)
	return call[Standings](ctx, c, MethodContestStandings, params)
}

// ContestStatus returns the submissions of a contest, newest first.
// Useful extras: handle, from, count.
func (c *HttpClient) ContestStatus(ctx context.Context, contestID int64, extra ...Parameter) (Result[[]Submission], error) {
	params := append([]Parameter{Param("contestId", contestID)}, extra...)
	return call[[]Submission](ctx, c, MethodContestStatus, params)
}

// ProblemsetProblems returns the problemset and per-problem solve counts.
// Useful extras: tags (';'-separated), problemsetName.
func (c *HttpClient) ProblemsetProblems(ctx context.Context, extra ...Parameter) (Result[Problemset], error) {
	return call[Problemset](ctx, c, MethodProblemsetProblems, extra)
}

// ProblemsetRecentStatus returns recent submissions, newest first. An empty problemsetName
// means the main problemset.
func (c *HttpClient) ProblemsetRecentStatus(ctx context.Context, count int, problemsetName string) (Result[[]Submission], error) {
	params := []Parameter{Param("count", count)}
	if name := strings.TrimSpace(problemsetName); name != "" {
		params = append(params, Param("problemsetName", name))
	}
	return call[[]Submission](ctx, c, MethodProblemsetRecentStatus, params)
}

// RecentActions returns up to maxCount recent actions.
func (c *HttpClient) RecentActions(ctx context.Context, maxCount int) (Result[[]RecentAction], error) {
	return call[[]RecentAction](ctx, c, MethodRecentActions, []Parameter{
		Param("maxCount", maxCount),
	})
}

// UserBlogEntries returns a user's blog entries in short form.
func (c *HttpClient) UserBlogEntries(ctx context.Context, handle string) (Result[[]BlogEntry], error) {
	handle = strings.TrimSpace(handle)
	return call[[]BlogEntry](ctx, c, MethodUserBlogEntries, []Parameter{
		Param("handle", handle),
	})
}

// UserInfo returns one User per requested handle. Blank handles are dropped; when none are
// left the request is still sent and the API rejects it.
func (c *HttpClient) UserInfo(ctx context.Context, handles ...string) (Result[[]User], error) {
	cleaned := make([]string, 0, len(handles))
	for _, h := range handles {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return call[[]User](ctx, c, MethodUserInfo, []Parameter{
		Param("handles", cleaned),
	})
}

// User returns the profile of a single handle.
func (c *HttpClient) User(ctx context.Context, handle string) (Result[User], error) {
	res, err := c.UserInfo(ctx, handle)
	if err != nil || !res.OK() {
		return mapResult(res, func([]User) User { return User{} }), err
	}
	if len(res.Value) == 0 {
		return Result[User]{}, errors.Wrapf(ErrMalformedResponse, "%s: empty result for %q", MethodUserInfo, handle)
	}
	return OKResult(res.Value[0]), nil
}

// UserRatedList returns users who took part in at least one rated contest, by decreasing
// rating. Useful extras: includeRetired, contestId.
func (c *HttpClient) UserRatedList(ctx context.Context, activeOnly bool, extra ...Parameter) (Result[[]User], error) {
	params := append([]Parameter{Param("activeOnly", activeOnly)}, extra...)
	return call[[]User](ctx, c, MethodUserRatedList, params)
}

// UserRating returns a user's rating history.
func (c *HttpClient) UserRating(ctx context.Context, handle string) (Result[[]RatingChange], error) {
	handle = strings.TrimSpace(handle)
	return call[[]RatingChange](ctx, c, MethodUserRating, []Parameter{
		Param("handle", handle),
	})
}

// UserStatus returns a user's submissions, newest first. Useful extras: from, count.
func (c *HttpClient) UserStatus(ctx context.Context, handle string, extra ...Parameter) (Result[[]Submission], error) {
	handle = strings.TrimSpace(handle)
	params := append([]Parameter{Param("handle", handle)}, extra...)
	return call[[]Submission](ctx, c, MethodUserStatus, params)
}

// UserSubmissions returns the latest count submissions of a user. count <= 0 means
// DefaultSubmissionCount.
func (c *HttpClient) UserSubmissions(ctx context.Context, handle string, count int) (Result[[]Submission], error) {
	if count <= 0 {
		count = DefaultSubmissionCount
	}
	return c.UserStatus(ctx, handle, Param("count", count))
}
