package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
	"gopkg.in/yaml.v3"

	"cfq/codeforces"
	"cfq/internal/config"
	"cfq/internal/render"
)

const kTimeLayout = "2006-01-02 15:04"

// Printer renders user-facing output (human and/or JSON).
type Printer interface {
	PrintUsers(ctx context.Context, users []codeforces.User) error
	PrintRatingChanges(ctx context.Context, changes []codeforces.RatingChange) error
	PrintSubmissions(ctx context.Context, subs []codeforces.Submission) error
	PrintContests(ctx context.Context, contests []codeforces.Contest) error
	PrintHacks(ctx context.Context, hacks []codeforces.Hack) error
	PrintStandings(ctx context.Context, s codeforces.Standings) error
	PrintProblemset(ctx context.Context, ps codeforces.Problemset) error
	PrintBlogEntries(ctx context.Context, entries []codeforces.BlogEntry) error
	PrintBlogEntry(ctx context.Context, e codeforces.BlogEntry) error
	PrintComments(ctx context.Context, comments []codeforces.Comment) error
	PrintRecentActions(ctx context.Context, actions []codeforces.RecentAction) error
	PrintConfig(ctx context.Context, cfg config.Config) error
	PrintError(ctx context.Context, err error) error
}

// StdPrinter prints tables to Out and errors to Err. In JSON mode every value is written as
// one indented JSON document, undeclared upstream keys included.
type StdPrinter struct {
	Out      io.Writer
	Err      io.Writer
	JSON     bool
	NoColor  bool
	Renderer render.Renderer
}

func NewStdPrinter(out io.Writer, err io.Writer, asJSON bool) *StdPrinter {
	return &StdPrinter{Out: out, Err: err, JSON: asJSON, Renderer: render.NewHTMLRenderer()}
}

var _ Printer = (*StdPrinter)(nil)

func (p *StdPrinter) PrintUsers(ctx context.Context, users []codeforces.User) error {
	if p.JSON {
		return p.printJSON(users)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "HANDLE\tRATING\tMAX\tRANK\tCONTRIBUTION\tLAST ONLINE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				p.ratingColor(u.Rating, u.Handle),
				optInt(u.Rating),
				optInt(u.MaxRating),
				u.Rank,
				u.Contribution,
				sinceUnix(u.LastOnlineTimeSeconds),
			)
		}
		return nil
	})
}

func (p *StdPrinter) PrintRatingChanges(ctx context.Context, changes []codeforces.RatingChange) error {
	if p.JSON {
		return p.printJSON(changes)
	}
	err := p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "CONTEST\tNAME\tHANDLE\tRANK\tOLD\tNEW\tDELTA")
		for _, c := range changes {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
				c.ContestID, c.ContestName, c.Handle, c.Rank, c.OldRating, c.NewRating, p.delta(c.Delta()))
		}
		return nil
	})
	if err != nil || len(changes) == 0 {
		return err
	}
	summary, err := summarizeRatings(changes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.Out, "\n%s\n", summary)
	return err
}

// summarizeRatings describes a rating history: contest count, peak rating, mean and median
// delta, and the best single rank.
func summarizeRatings(changes []codeforces.RatingChange) (string, error) {
	ratings := make(stats.Float64Data, 0, len(changes))
	deltas := make(stats.Float64Data, 0, len(changes))
	ranks := make(stats.Float64Data, 0, len(changes))
	for _, c := range changes {
		ratings = append(ratings, float64(c.NewRating))
		deltas = append(deltas, float64(c.Delta()))
		ranks = append(ranks, float64(c.Rank))
	}

	peak, err := stats.Max(ratings)
	if err != nil {
		return "", err
	}
	mean, err := stats.Mean(deltas)
	if err != nil {
		return "", err
	}
	median, err := stats.Median(deltas)
	if err != nil {
		return "", err
	}
	best, err := stats.Min(ranks)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("contests: %d  peak: %.0f  mean delta: %+.1f  median delta: %+.1f  best rank: %.0f",
		len(changes), peak, mean, median, best), nil
}

func (p *StdPrinter) PrintSubmissions(ctx context.Context, subs []codeforces.Submission) error {
	if p.JSON {
		return p.printJSON(subs)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tWHEN\tAUTHOR\tPROBLEM\tLANG\tVERDICT\tTESTS\tTIME\tMEMORY")
		for _, s := range subs {
			author, problem := "", ""
			if s.Author != nil {
				author = strings.Join(s.Author.Handles(), ",")
			}
			if s.Problem != nil {
				problem = s.Problem.ID()
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d ms\t%s\n",
				s.ID,
				formatUnix(s.CreationTimeSeconds),
				author,
				problem,
				s.ProgrammingLanguage,
				p.verdict(s.VerdictOrTesting()),
				s.PassedTestCount,
				s.TimeConsumedMillis,
				humanize.IBytes(uint64(max(s.MemoryConsumedBytes, 0))),
			)
		}
		return nil
	})
}

func (p *StdPrinter) PrintContests(ctx context.Context, contests []codeforces.Contest) error {
	if p.JSON {
		return p.printJSON(contests)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tPHASE\tSTART\tDURATION")
		for _, c := range contests {
			start := "-"
			if c.StartTimeSeconds != nil {
				start = c.StartTime().UTC().Format(kTimeLayout)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, c.Phase, start, c.Duration())
		}
		return nil
	})
}

func (p *StdPrinter) PrintHacks(ctx context.Context, hacks []codeforces.Hack) error {
	if p.JSON {
		return p.printJSON(hacks)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tWHEN\tHACKER\tDEFENDER\tPROBLEM\tVERDICT")
		for _, h := range hacks {
			hacker, defender, problem, verdict := "", "", "", string(codeforces.HackTesting)
			if h.Hacker != nil {
				hacker = strings.Join(h.Hacker.Handles(), ",")
			}
			if h.Defender != nil {
				defender = strings.Join(h.Defender.Handles(), ",")
			}
			if h.Problem != nil {
				problem = h.Problem.ID()
			}
			if h.Verdict != nil {
				verdict = string(*h.Verdict)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", h.ID, formatUnix(h.CreationTimeSeconds), hacker, defender, problem, verdict)
		}
		return nil
	})
}

func (p *StdPrinter) PrintStandings(ctx context.Context, s codeforces.Standings) error {
	if p.JSON {
		return p.printJSON(s)
	}
	if _, err := fmt.Fprintf(p.Out, "%s (%s, %s)\n\n", s.Contest.Name, s.Contest.Type, s.Contest.Phase); err != nil {
		return err
	}
	return p.table(func(w io.Writer) error {
		header := []string{"RANK", "PARTY", "POINTS", "PENALTY", "HACKS"}
		for _, pr := range s.Problems {
			header = append(header, pr.Index)
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))

		for _, row := range s.Rows {
			party := ""
			if row.Party != nil {
				party = partyName(*row.Party)
			}
			cells := []string{
				strconv.Itoa(row.Rank),
				party,
				formatPoints(row.Points),
				strconv.Itoa(row.Penalty),
				fmt.Sprintf("+%d:-%d", row.SuccessfulHackCount, row.UnsuccessfulHackCount),
			}
			for _, r := range row.ProblemResults {
				cells = append(cells, problemCell(r))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return nil
	})
}

func (p *StdPrinter) PrintProblemset(ctx context.Context, ps codeforces.Problemset) error {
	if p.JSON {
		return p.printJSON(ps)
	}
	solved := make(map[string]int, len(ps.Statistics))
	for _, st := range ps.Statistics {
		solved[codeforces.Problem{ContestID: st.ContestID, Index: st.Index}.ID()] = st.SolvedCount
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tNAME\tRATING\tSOLVED\tTAGS")
		for _, pr := range ps.Problems {
			id := pr.ID()
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", id, pr.Name, optInt(pr.Rating), solved[id], strings.Join(pr.Tags, ", "))
		}
		return nil
	})
}

func (p *StdPrinter) PrintBlogEntries(ctx context.Context, entries []codeforces.BlogEntry) error {
	if p.JSON {
		return p.printJSON(entries)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tCREATED\tAUTHOR\tRATING\tTITLE")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, formatUnix(e.CreationTimeSeconds), e.AuthorHandle, p.delta(e.Rating), oneLine(render.PlainText(e.Title)))
		}
		return nil
	})
}

func (p *StdPrinter) PrintBlogEntry(ctx context.Context, e codeforces.BlogEntry) error {
	if p.JSON {
		return p.printJSON(e)
	}
	text, err := p.renderer().RenderBlogEntry(ctx, e)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.Out, text)
	return err
}

func (p *StdPrinter) PrintComments(ctx context.Context, comments []codeforces.Comment) error {
	if p.JSON {
		return p.printJSON(comments)
	}
	for i, c := range comments {
		if i > 0 {
			if _, err := fmt.Fprintln(p.Out); err != nil {
				return err
			}
		}
		text, err := p.renderer().RenderComment(ctx, c)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(p.Out, text); err != nil {
			return err
		}
	}
	return nil
}

func (p *StdPrinter) PrintRecentActions(ctx context.Context, actions []codeforces.RecentAction) error {
	if p.JSON {
		return p.printJSON(actions)
	}
	return p.table(func(w io.Writer) error {
		fmt.Fprintln(w, "WHEN\tKIND\tAUTHOR\tBLOG\tTITLE")
		for _, a := range actions {
			kind, author := "blog", ""
			var blogID int64
			title := ""
			if a.BlogEntry != nil {
				author, blogID, title = a.BlogEntry.AuthorHandle, a.BlogEntry.ID, oneLine(render.PlainText(a.BlogEntry.Title))
			}
			if a.Comment != nil {
				kind, author = "comment", a.Comment.CommentatorHandle
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", formatUnix(a.TimeSeconds), kind, author, blogID, title)
		}
		return nil
	})
}

func (p *StdPrinter) PrintConfig(ctx context.Context, cfg config.Config) error {
	if p.JSON {
		return p.printJSON(cfg)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = p.Out.Write(b)
	return err
}

func (p *StdPrinter) PrintError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintf(p.Err, "%s %v\n", p.paint(color.FgRed, "error:"), err)
	return werr
}

func (p *StdPrinter) printJSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *StdPrinter) renderer() render.Renderer {
	if p.Renderer == nil {
		return render.NewHTMLRenderer()
	}
	return p.Renderer
}

func (p *StdPrinter) paint(attr color.Attribute, s string) string {
	if p.NoColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

// ratingColor paints s with the Codeforces rank color for rating.
func (p *StdPrinter) ratingColor(rating *int, s string) string {
	if rating == nil {
		return s
	}
	return p.paint(RatingColor(*rating), s)
}

func (p *StdPrinter) verdict(v codeforces.Verdict) string {
	switch v {
	case codeforces.VerdictOK:
		return p.paint(color.FgGreen, string(v))
	case codeforces.VerdictTesting:
		return p.paint(color.FgYellow, string(v))
	default:
		return p.paint(color.FgRed, string(v))
	}
}

func (p *StdPrinter) delta(d int) string {
	s := fmt.Sprintf("%+d", d)
	switch {
	case d > 0:
		return p.paint(color.FgGreen, s)
	case d < 0:
		return p.paint(color.FgRed, s)
	default:
		return s
	}
}

// RatingColor returns the terminal color closest to the site's color for a rating.
func RatingColor(rating int) color.Attribute {
	switch {
	case rating < 1200:
		return color.FgHiBlack
	case rating < 1400:
		return color.FgGreen
	case rating < 1600:
		return color.FgCyan
	case rating < 1900:
		return color.FgBlue
	case rating < 2100:
		return color.FgMagenta
	case rating < 2400:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func partyName(p codeforces.Party) string {
	if p.TeamName != nil && *p.TeamName != "" {
		return *p.TeamName
	}
	name := strings.Join(p.Handles(), ",")
	if p.ParticipantType != "" && p.ParticipantType != codeforces.ParticipantContestant {
		name += " (" + strings.ToLower(string(p.ParticipantType)) + ")"
	}
	return name
}

func problemCell(r codeforces.ProblemResult) string {
	switch {
	case r.Solved():
		return formatPoints(r.Points)
	case r.RejectedAttemptCount > 0:
		return "-" + strconv.Itoa(r.RejectedAttemptCount)
	default:
		return "."
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func sinceUnix(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	return humanize.Time(time.Unix(seconds, 0))
}

func formatUnix(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	return time.Unix(seconds, 0).UTC().Format(kTimeLayout)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
