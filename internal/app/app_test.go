package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cfq/codeforces"
	"cfq/internal/config"
	"cfq/internal/errx"
	"cfq/internal/output"
)

// fakeClient implements the calls these tests need; the embedded interface panics on others.
type fakeClient struct {
	codeforces.Client

	gotHandle    string
	gotHandles   []string
	gotContestID int64
	gotCount     int
	gotGym       bool
	gotParams    []codeforces.Parameter

	users       codeforces.Result[[]codeforces.User]
	submissions codeforces.Result[[]codeforces.Submission]
	contests    codeforces.Result[[]codeforces.Contest]
	standings   codeforces.Result[codeforces.Standings]
	actions     codeforces.Result[[]codeforces.RecentAction]
	err         error
}

func (c *fakeClient) UserInfo(ctx context.Context, handles ...string) (codeforces.Result[[]codeforces.User], error) {
	c.gotHandles = handles
	return c.users, c.err
}

func (c *fakeClient) UserRatedList(ctx context.Context, activeOnly bool, extra ...codeforces.Parameter) (codeforces.Result[[]codeforces.User], error) {
	c.gotParams = extra
	return c.users, c.err
}

func (c *fakeClient) UserStatus(ctx context.Context, handle string, extra ...codeforces.Parameter) (codeforces.Result[[]codeforces.Submission], error) {
	c.gotHandle = handle
	c.gotParams = extra
	return c.submissions, c.err
}

func (c *fakeClient) ContestList(ctx context.Context, gym bool) (codeforces.Result[[]codeforces.Contest], error) {
	c.gotGym = gym
	return c.contests, c.err
}

func (c *fakeClient) ContestStandings(ctx context.Context, contestID int64, extra ...codeforces.Parameter) (codeforces.Result[codeforces.Standings], error) {
	c.gotContestID = contestID
	c.gotParams = extra
	return c.standings, c.err
}

func (c *fakeClient) RecentActions(ctx context.Context, maxCount int) (codeforces.Result[[]codeforces.RecentAction], error) {
	c.gotCount = maxCount
	return c.actions, c.err
}

// fakeOutput records what was printed; the embedded interface panics on other calls.
type fakeOutput struct {
	output.Printer

	users       []codeforces.User
	submissions []codeforces.Submission
	contests    []codeforces.Contest
	standings   *codeforces.Standings
	actions     []codeforces.RecentAction
	cfg         *config.Config
}

func (o *fakeOutput) PrintUsers(ctx context.Context, users []codeforces.User) error {
	o.users = users
	return nil
}

func (o *fakeOutput) PrintSubmissions(ctx context.Context, subs []codeforces.Submission) error {
	o.submissions = subs
	return nil
}

func (o *fakeOutput) PrintContests(ctx context.Context, contests []codeforces.Contest) error {
	o.contests = contests
	return nil
}

func (o *fakeOutput) PrintStandings(ctx context.Context, s codeforces.Standings) error {
	o.standings = &s
	return nil
}

func (o *fakeOutput) PrintRecentActions(ctx context.Context, actions []codeforces.RecentAction) error {
	o.actions = actions
	return nil
}

func (o *fakeOutput) PrintConfig(ctx context.Context, cfg config.Config) error {
	o.cfg = &cfg
	return nil
}

// newEnvelopeClient returns a real HTTP client whose server answers every call with body.
func newEnvelopeClient(t *testing.T, body string) *codeforces.HttpClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return codeforces.NewHttpClient(codeforces.HttpClientOptions{BaseURL: srv.URL, Http: srv.Client()})
}

func TestApp_UserInfo_PrintsUsers(t *testing.T) {
	t.Parallel()

	rating := 3800
	client := &fakeClient{users: codeforces.OKResult([]codeforces.User{{Handle: "tourist", Rating: &rating}})}
	out := &fakeOutput{}
	a := New(App{Client: client, Output: out, Config: config.Default()})

	if err := a.UserInfo(context.Background(), []string{"tourist"}); err != nil {
		t.Fatalf("UserInfo() error = %v", err)
	}
	if diff := cmp.Diff([]string{"tourist"}, client.gotHandles); diff != "" {
		t.Fatalf("handles mismatch (-want +got):\n%s", diff)
	}
	if len(out.users) != 1 || out.users[0].Handle != "tourist" {
		t.Fatalf("printed users = %+v, want tourist", out.users)
	}
}

func TestApp_ResultKinds_MapToExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "rejected", body: `{"status":"FAILED","comment":"handles: User with handle x not found"}`, want: errx.ExitRejected},
		{name: "malformed", body: `{"status":"OK","result":{"not":"a list"}}`, want: errx.ExitFatal},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cf := newEnvelopeClient(t, tc.body)
			out := &fakeOutput{}
			a := New(App{Client: cf, Output: out, Config: config.Default()})

			err := a.UserInfo(context.Background(), []string{"x"})
			if got := errx.ExitCode(err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, tc.want)
			}
			if out.users != nil {
				t.Fatalf("printed users on failure: %+v", out.users)
			}
		})
	}
}

func TestApp_Unreachable(t *testing.T) {
	t.Parallel()

	cf := codeforces.NewHttpClient(codeforces.HttpClientOptions{BaseURL: "http://127.0.0.1:1"})
	a := New(App{Client: cf, Output: &fakeOutput{}, Config: config.Default()})

	err := a.RecentActions(context.Background(), 5)
	if !errors.Is(err, errx.ErrUnreachable) {
		t.Fatalf("RecentActions() error = %v, want ErrUnreachable", err)
	}
}

func TestApp_BlankHandle_IsRejectedUpstream(t *testing.T) {
	t.Parallel()

	cf := newEnvelopeClient(t, `{"status":"FAILED","comment":"handles: Field should not be empty"}`)
	a := New(App{Client: cf, Output: &fakeOutput{}, Config: config.Default()})

	err := a.UserInfo(context.Background(), []string{" "})
	if got := errx.ExitCode(err); got != errx.ExitRejected {
		t.Fatalf("ExitCode(%v) = %d, want %d", err, got, errx.ExitRejected)
	}
	var rejected *errx.RejectedError
	if !errors.As(err, &rejected) || rejected.Comment != "handles: Field should not be empty" {
		t.Fatalf("error = %v, want upstream comment", err)
	}
}

func TestApp_UserStatus_DefaultCountAndOptionalParams(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	cfg := config.Default()
	cfg.DefaultCount = 15
	a := New(App{Client: client, Output: &fakeOutput{}, Config: cfg})

	client.submissions = codeforces.OKResult([]codeforces.Submission{})
	if err := a.UserStatus(context.Background(), UserStatusOptions{Handle: "Petr"}); err != nil {
		t.Fatalf("UserStatus() error = %v", err)
	}
	want := []codeforces.Parameter{{Key: "count", Value: "15"}}
	if diff := cmp.Diff(want, client.gotParams); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	if err := a.UserStatus(context.Background(), UserStatusOptions{Handle: "Petr", From: 3, Count: 2}); err != nil {
		t.Fatalf("UserStatus() error = %v", err)
	}
	want = []codeforces.Parameter{{Key: "from", Value: "3"}, {Key: "count", Value: "2"}}
	if diff := cmp.Diff(want, client.gotParams); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_ContestStandings_OnlySetOptionsAreSent(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	out := &fakeOutput{}
	a := New(App{Client: client, Output: out, Config: config.Default()})

	client.standings = codeforces.OKResult(codeforces.Standings{Contest: codeforces.Contest{ID: 566, Name: "VK Cup"}})

	err := a.ContestStandings(context.Background(), StandingsOptions{
		ContestID:      566,
		Count:          5,
		Handles:        []string{"tourist", " ", "Petr"},
		ShowUnofficial: true,
	})
	if err != nil {
		t.Fatalf("ContestStandings() error = %v", err)
	}
	if client.gotContestID != 566 {
		t.Fatalf("contestId = %d, want 566", client.gotContestID)
	}
	want := []codeforces.Parameter{
		{Key: "count", Value: "5"},
		{Key: "handles", Value: "tourist;Petr"},
		{Key: "showUnofficial", Value: "true"},
	}
	if diff := cmp.Diff(want, client.gotParams); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if out.standings == nil || out.standings.Contest.Name != "VK Cup" {
		t.Fatalf("printed standings = %+v", out.standings)
	}
}

func TestApp_ContestList_FiltersAndLimits(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	out := &fakeOutput{}
	a := New(App{Client: client, Output: out, Config: config.Default()})

	client.contests = codeforces.OKResult([]codeforces.Contest{
		{ID: 3, Phase: codeforces.PhaseBefore},
		{ID: 2, Phase: codeforces.PhaseFinished},
		{ID: 1, Phase: codeforces.PhaseFinished},
	})

	if err := a.ContestList(context.Background(), ContestListOptions{Gym: true, Phase: "finished", Limit: 1}); err != nil {
		t.Fatalf("ContestList() error = %v", err)
	}
	if !client.gotGym {
		t.Fatalf("gym = false, want true")
	}
	if len(out.contests) != 1 || out.contests[0].ID != 2 {
		t.Fatalf("printed contests = %+v, want only id 2", out.contests)
	}
}

func TestApp_RecentActions_DefaultCount(t *testing.T) {
	t.Parallel()

	client := &fakeClient{actions: codeforces.OKResult([]codeforces.RecentAction{})}
	a := New(App{Client: client, Output: &fakeOutput{}, Config: config.Config{DefaultCount: 7}})

	if err := a.RecentActions(context.Background(), 0); err != nil {
		t.Fatalf("RecentActions() error = %v", err)
	}
	if client.gotCount != 7 {
		t.Fatalf("maxCount = %d, want 7", client.gotCount)
	}
}

func TestApp_ConfigInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfq", "config.yaml")
	store := config.NewFileStore(path)
	out := &fakeOutput{}
	cfg := config.Default()
	cfg.UserAgent = "init-test"
	a := New(App{ConfigStore: store, Output: out, Config: cfg})

	if err := a.ConfigInit(context.Background(), false); err != nil {
		t.Fatalf("ConfigInit() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.UserAgent != "init-test" {
		t.Fatalf("UserAgent = %q, want %q", got.UserAgent, "init-test")
	}

	err = a.ConfigInit(context.Background(), false)
	if got := errx.ExitCode(err); got != errx.ExitUsage {
		t.Fatalf("second ConfigInit() ExitCode(%v) = %d, want %d", err, got, errx.ExitUsage)
	}
	if err := a.ConfigInit(context.Background(), true); err != nil {
		t.Fatalf("ConfigInit(force) error = %v", err)
	}
}
