package codeforces

import (
	"strconv"
	"time"
)

// RankUnrated is the rank reported for users that never took part in a rated contest.
const RankUnrated = "unrated"

// User is a profile and rating snapshot for one handle.
type User struct {
	Handle                  string  `json:"handle"`
	Email                   *string `json:"email,omitempty"`
	VKID                    *string `json:"vkId,omitempty"`
	OpenID                  *string `json:"openId,omitempty"`
	FirstName               *string `json:"firstName,omitempty"`
	LastName                *string `json:"lastName,omitempty"`
	Country                 *string `json:"country,omitempty"`
	City                    *string `json:"city,omitempty"`
	Organization            *string `json:"organization,omitempty"`
	Contribution            int     `json:"contribution"`
	Rank                    string  `json:"rank"`
	Rating                  *int    `json:"rating,omitempty"`
	MaxRank                 *string `json:"maxRank,omitempty"`
	MaxRating               *int    `json:"maxRating,omitempty"`
	LastOnlineTimeSeconds   int64   `json:"lastOnlineTimeSeconds"`
	RegistrationTimeSeconds int64   `json:"registrationTimeSeconds"`
	FriendOfCount           int     `json:"friendOfCount"`
	Avatar                  string  `json:"avatar"`
	TitlePhoto              string  `json:"titlePhoto"`

	Extra Extra `json:"-"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	*u = User{Rank: RankUnrated}
	return mapObject(data, (*plain)(u), &u.Extra)
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalObject(plain(u), u.Extra)
}

// Rated reports whether the user has a rating.
func (u User) Rated() bool { return u.Rating != nil }

// BlogEntry is an authored post. The short form returned by list endpoints has no Content.
type BlogEntry struct {
	ID                      int64    `json:"id"`
	OriginalLocale          string   `json:"originalLocale"`
	CreationTimeSeconds     int64    `json:"creationTimeSeconds"`
	AuthorHandle            string   `json:"authorHandle"`
	Title                   string   `json:"title"`
	Content                 *string  `json:"content,omitempty"`
	Locale                  string   `json:"locale"`
	ModificationTimeSeconds int64    `json:"modificationTimeSeconds"`
	AllowViewHistory        bool     `json:"allowViewHistory"`
	Tags                    []string `json:"tags"`
	Rating                  int      `json:"rating"`

	Extra Extra `json:"-"`
}

func (b *BlogEntry) UnmarshalJSON(data []byte) error {
	type plain BlogEntry
	*b = BlogEntry{}
	return mapObject(data, (*plain)(b), &b.Extra)
}

func (b BlogEntry) MarshalJSON() ([]byte, error) {
	type plain BlogEntry
	return marshalObject(plain(b), b.Extra)
}

// Short reports whether the entry is in short form (no body).
func (b BlogEntry) Short() bool { return b.Content == nil }

// Comment is a reply to a blog entry.
type Comment struct {
	ID                  int64  `json:"id"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	CommentatorHandle   string `json:"commentatorHandle"`
	Locale              string `json:"locale"`
	Text                string `json:"text"`
	ParentCommentID     *int64 `json:"parentCommentId,omitempty"`
	Rating              int    `json:"rating"`

	Extra Extra `json:"-"`
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	*c = Comment{}
	return mapObject(data, (*plain)(c), &c.Extra)
}

func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	return marshalObject(plain(c), c.Extra)
}

// RecentAction wraps either a blog entry (short form) or a comment.
type RecentAction struct {
	TimeSeconds int64      `json:"timeSeconds"`
	BlogEntry   *BlogEntry `json:"blogEntry,omitempty"`
	Comment     *Comment   `json:"comment,omitempty"`

	Extra Extra `json:"-"`
}

func (a *RecentAction) UnmarshalJSON(data []byte) error {
	type plain RecentAction
	*a = RecentAction{}
	return mapObject(data, (*plain)(a), &a.Extra)
}

func (a RecentAction) MarshalJSON() ([]byte, error) {
	type plain RecentAction
	return marshalObject(plain(a), a.Extra)
}

// RatingChange is one contest's effect on one user's rating.
type RatingChange struct {
	ContestID               int64  `json:"contestId"`
	ContestName             string `json:"contestName"`
	Handle                  string `json:"handle"`
	Rank                    int    `json:"rank"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`

	Extra Extra `json:"-"`
}

func (r *RatingChange) UnmarshalJSON(data []byte) error {
	type plain RatingChange
	*r = RatingChange{}
	return mapObject(data, (*plain)(r), &r.Extra)
}

func (r RatingChange) MarshalJSON() ([]byte, error) {
	type plain RatingChange
	return marshalObject(plain(r), r.Extra)
}

func (r RatingChange) Delta() int { return r.NewRating - r.OldRating }

// Contest is contest metadata.
type Contest struct {
	ID                  int64       `json:"id"`
	Name                string      `json:"name"`
	Type                ContestType `json:"type"`
	Phase               Phase       `json:"phase"`
	Frozen              bool        `json:"frozen"`
	DurationSeconds     int64       `json:"durationSeconds"`
	StartTimeSeconds    *int64      `json:"startTimeSeconds,omitempty"`
	RelativeTimeSeconds *int64      `json:"relativeTimeSeconds,omitempty"`
	PreparedBy          *string     `json:"preparedBy,omitempty"`
	WebsiteURL          *string     `json:"websiteUrl,omitempty"`
	Description         *string     `json:"description,omitempty"`
	Difficulty          *int        `json:"difficulty,omitempty"`
	Kind                *string     `json:"kind,omitempty"`
	ICPCRegion          *string     `json:"icpcRegion,omitempty"`
	Country             *string     `json:"country,omitempty"`
	City                *string     `json:"city,omitempty"`
	Season              *string     `json:"season,omitempty"`

	Extra Extra `json:"-"`
}

func (c *Contest) UnmarshalJSON(data []byte) error {
	type plain Contest
	*c = Contest{}
	return mapObject(data, (*plain)(c), &c.Extra)
}

func (c Contest) MarshalJSON() ([]byte, error) {
	type plain Contest
	return marshalObject(plain(c), c.Extra)
}

// StartTime returns the contest start, or the zero time when the API did not send one.
func (c Contest) StartTime() time.Time {
	if c.StartTimeSeconds == nil {
		return time.Time{}
	}
	return time.Unix(*c.StartTimeSeconds, 0)
}

func (c Contest) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

// Member is a single handle within a Party.
type Member struct {
	Handle string  `json:"handle"`
	Name   *string `json:"name,omitempty"`

	Extra Extra `json:"-"`
}

func (m *Member) UnmarshalJSON(data []byte) error {
	type plain Member
	*m = Member{}
	return mapObject(data, (*plain)(m), &m.Extra)
}

func (m Member) MarshalJSON() ([]byte, error) {
	type plain Member
	return marshalObject(plain(m), m.Extra)
}

// Party is a contestant or a team.
type Party struct {
	ContestID        *int64          `json:"contestId,omitempty"`
	Members          []Member        `json:"members"`
	ParticipantType  ParticipantType `json:"participantType"`
	TeamID           *int64          `json:"teamId,omitempty"`
	TeamName         *string         `json:"teamName,omitempty"`
	Ghost            bool            `json:"ghost"`
	Room             *int            `json:"room,omitempty"`
	StartTimeSeconds *int64          `json:"startTimeSeconds,omitempty"`

	Extra Extra `json:"-"`
}

func (p *Party) UnmarshalJSON(data []byte) error {
	type plain Party
	*p = Party{}
	return mapObject(data, (*plain)(p), &p.Extra)
}

func (p Party) MarshalJSON() ([]byte, error) {
	type plain Party
	return marshalObject(plain(p), p.Extra)
}

// Handles returns the member handles in order.
func (p Party) Handles() []string {
	out := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		out = append(out, m.Handle)
	}
	return out
}

// Problem is a problem definition.
type Problem struct {
	ContestID      *int64      `json:"contestId,omitempty"`
	ProblemsetName *string     `json:"problemsetName,omitempty"`
	Index          string      `json:"index"`
	Name           string      `json:"name"`
	Type           ProblemType `json:"type"`
	Points         *float64    `json:"points,omitempty"`
	Rating         *int        `json:"rating,omitempty"`
	Tags           []string    `json:"tags"`

	Extra Extra `json:"-"`
}

func (p *Problem) UnmarshalJSON(data []byte) error {
	type plain Problem
	*p = Problem{}
	return mapObject(data, (*plain)(p), &p.Extra)
}

func (p Problem) MarshalJSON() ([]byte, error) {
	type plain Problem
	return marshalObject(plain(p), p.Extra)
}

// ID returns the conventional "<contestId><index>" identifier, e.g. "1791A".
func (p Problem) ID() string {
	if p.ContestID == nil {
		return p.Index
	}
	return strconv.FormatInt(*p.ContestID, 10) + p.Index
}

// ProblemStatistics is the solve count for one problem.
type ProblemStatistics struct {
	ContestID   *int64 `json:"contestId,omitempty"`
	Index       string `json:"index"`
	SolvedCount int    `json:"solvedCount"`

	Extra Extra `json:"-"`
}

func (s *ProblemStatistics) UnmarshalJSON(data []byte) error {
	type plain ProblemStatistics
	*s = ProblemStatistics{}
	return mapObject(data, (*plain)(s), &s.Extra)
}

func (s ProblemStatistics) MarshalJSON() ([]byte, error) {
	type plain ProblemStatistics
	return marshalObject(plain(s), s.Extra)
}

// Submission is a judged attempt.
type Submission struct {
	ID                  int64    `json:"id"`
	ContestID           *int64   `json:"contestId,omitempty"`
	CreationTimeSeconds int64    `json:"creationTimeSeconds"`
	RelativeTimeSeconds int64    `json:"relativeTimeSeconds"`
	Problem             *Problem `json:"problem,omitempty"`
	Author              *Party   `json:"author,omitempty"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	Verdict             *Verdict `json:"verdict,omitempty"`
	Testset             string   `json:"testset"`
	PassedTestCount     int      `json:"passedTestCount"`
	TimeConsumedMillis  int64    `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64    `json:"memoryConsumedBytes"`
	Points              *float64 `json:"points,omitempty"`

	Extra Extra `json:"-"`
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	type plain Submission
	*s = Submission{}
	return mapObject(data, (*plain)(s), &s.Extra)
}

func (s Submission) MarshalJSON() ([]byte, error) {
	type plain Submission
	return marshalObject(plain(s), s.Extra)
}

func (s Submission) CreationTime() time.Time {
	return time.Unix(s.CreationTimeSeconds, 0)
}

// VerdictOrTesting returns the verdict, treating an absent one as still being judged.
func (s Submission) VerdictOrTesting() Verdict {
	if s.Verdict == nil {
		return VerdictTesting
	}
	return *s.Verdict
}

// JudgeProtocol describes how a hack was judged.
type JudgeProtocol struct {
	Manual   string `json:"manual"`
	Protocol string `json:"protocol"`
	Verdict  string `json:"verdict"`

	Extra Extra `json:"-"`
}

func (j *JudgeProtocol) UnmarshalJSON(data []byte) error {
	type plain JudgeProtocol
	*j = JudgeProtocol{}
	return mapObject(data, (*plain)(j), &j.Extra)
}

func (j JudgeProtocol) MarshalJSON() ([]byte, error) {
	type plain JudgeProtocol
	return marshalObject(plain(j), j.Extra)
}

// Hack is a challenge of one party's solution by another.
type Hack struct {
	ID                  int64          `json:"id"`
	CreationTimeSeconds int64          `json:"creationTimeSeconds"`
	Hacker              *Party         `json:"hacker,omitempty"`
	Defender            *Party         `json:"defender,omitempty"`
	Verdict             *HackVerdict   `json:"verdict,omitempty"`
	Problem             *Problem       `json:"problem,omitempty"`
	Test                *string        `json:"test,omitempty"`
	JudgeProtocol       *JudgeProtocol `json:"judgeProtocol,omitempty"`

	Extra Extra `json:"-"`
}

func (h *Hack) UnmarshalJSON(data []byte) error {
	type plain Hack
	*h = Hack{}
	return mapObject(data, (*plain)(h), &h.Extra)
}

func (h Hack) MarshalJSON() ([]byte, error) {
	type plain Hack
	return marshalObject(plain(h), h.Extra)
}

// RanklistRow is one row of contest standings.
type RanklistRow struct {
	Party                     *Party          `json:"party,omitempty"`
	Rank                      int             `json:"rank"`
	Points                    float64         `json:"points"`
	Penalty                   int             `json:"penalty"`
	SuccessfulHackCount       int             `json:"successfulHackCount"`
	UnsuccessfulHackCount     int             `json:"unsuccessfulHackCount"`
	ProblemResults            []ProblemResult `json:"problemResults"`
	LastSubmissionTimeSeconds *int64          `json:"lastSubmissionTimeSeconds,omitempty"`

	Extra Extra `json:"-"`
}

func (r *RanklistRow) UnmarshalJSON(data []byte) error {
	type plain RanklistRow
	*r = RanklistRow{}
	return mapObject(data, (*plain)(r), &r.Extra)
}

func (r RanklistRow) MarshalJSON() ([]byte, error) {
	type plain RanklistRow
	return marshalObject(plain(r), r.Extra)
}

// ProblemResult is one party's outcome on one problem within a RanklistRow.
type ProblemResult struct {
	Points                    float64           `json:"points"`
	Penalty                   *int              `json:"penalty,omitempty"`
	RejectedAttemptCount      int               `json:"rejectedAttemptCount"`
	Type                      ProblemResultType `json:"type"`
	BestSubmissionTimeSeconds *int64            `json:"bestSubmissionTimeSeconds,omitempty"`

	Extra Extra `json:"-"`
}

func (r *ProblemResult) UnmarshalJSON(data []byte) error {
	type plain ProblemResult
	*r = ProblemResult{}
	return mapObject(data, (*plain)(r), &r.Extra)
}

func (r ProblemResult) MarshalJSON() ([]byte, error) {
	type plain ProblemResult
	return marshalObject(plain(r), r.Extra)
}

// Solved reports whether the party scored on the problem.
func (r ProblemResult) Solved() bool { return r.Points > 0 }

// Standings is the payload of contest.standings.
type Standings struct {
	Contest  Contest       `json:"contest"`
	Problems []Problem     `json:"problems"`
	Rows     []RanklistRow `json:"rows"`
}

// Problemset is the payload of problemset.problems.
type Problemset struct {
	Problems   []Problem           `json:"problems"`
	Statistics []ProblemStatistics `json:"problemStatistics"`
}
