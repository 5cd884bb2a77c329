package render

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mitchellh/go-wordwrap"

	"cfq/codeforces"
)

const (
	kBlogEntryURLFormat = "https://codeforces.com/blog/entry/%d"
	kDefaultWidth       = 100
)

// Renderer converts Codeforces HTML content (blog entries, comments) into plain text for the
// terminal.
type Renderer interface {
	RenderBlogEntry(ctx context.Context, e codeforces.BlogEntry) (string, error)
	RenderComment(ctx context.Context, c codeforces.Comment) (string, error)
}

// HTMLRenderer is a renderer for Codeforces HTML content.
type HTMLRenderer struct {
	// Indent is prepended to every line of a comment body. Defaults to four spaces.
	Indent string

	// Width wraps prose lines longer than this many bytes. Zero means 100; negative disables
	// wrapping. Indented lines (code) are never wrapped.
	Width int
}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{Indent: "    ", Width: kDefaultWidth} }

func (r *HTMLRenderer) RenderBlogEntry(ctx context.Context, e codeforces.BlogEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder

	title := htmlToPlainText(e.Title)
	if title == "" {
		title = "Blog entry"
	}
	b.WriteString(title + "\n")

	if author := strings.TrimSpace(e.AuthorHandle); author != "" {
		b.WriteString(fmt.Sprintf("By %s, %s\n", author, formatTime(e.CreationTimeSeconds)))
	}
	if e.ID > 0 {
		b.WriteString("URL: " + fmt.Sprintf(kBlogEntryURLFormat, e.ID) + "\n")
	}
	if tags := joinTags(e.Tags); tags != "" {
		b.WriteString("Tags: " + tags + "\n")
	}
	b.WriteString(fmt.Sprintf("Rating: %+d\n", e.Rating))

	if e.Content != nil {
		if body := r.wrap(htmlToPlainText(*e.Content)); body != "" {
			b.WriteString("\n")
			b.WriteString(body)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

func (r *HTMLRenderer) RenderComment(ctx context.Context, c codeforces.Comment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("#%d %s (%+d) %s", c.ID, c.CommentatorHandle, c.Rating, formatTime(c.CreationTimeSeconds)))
	if c.ParentCommentID != nil {
		b.WriteString(fmt.Sprintf(" reply to #%d", *c.ParentCommentID))
	}
	b.WriteString("\n")
	if text := r.wrap(htmlToPlainText(c.Text)); text != "" {
		b.WriteString(indentLines(r.indent(), text))
	}
	return b.String(), nil
}

func (r *HTMLRenderer) wrap(text string) string {
	width := r.Width
	switch {
	case width < 0:
		return text
	case width == 0:
		width = kDefaultWidth
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if len(line) <= width || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		lines[i] = wordwrap.WrapString(line, uint(width))
	}
	return strings.Join(lines, "\n")
}

func (r *HTMLRenderer) indent() string {
	if r.Indent == "" {
		return "    "
	}
	return r.Indent
}

func formatTime(seconds int64) string {
	if seconds <= 0 {
		return "unknown time"
	}
	return time.Unix(seconds, 0).UTC().Format("2006-01-02 15:04 MST")
}

func indentLines(prefix string, body string) string {
	lines := strings.Split(body, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

var (
	reBR          = regexp.MustCompile(`(?i)<br\s*/?>`)
	rePreOpen     = regexp.MustCompile(`(?i)<pre[^>]*>`)
	rePreClose    = regexp.MustCompile(`(?i)</pre>`)
	reLiOpen      = regexp.MustCompile(`(?i)<li[^>]*>`)
	reLiClose     = regexp.MustCompile(`(?i)</li>`)
	reBlockClose  = regexp.MustCompile(`(?i)</(p|div|section|h[1-6]|ul|ol|table|tr|blockquote)>`)
	reStripTags   = regexp.MustCompile(`(?s)<[^>]*>`)
	reManyNewline = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips markup from a Codeforces HTML fragment such as a blog title.
func PlainText(s string) string { return htmlToPlainText(s) }

// htmlToPlainText performs a minimal HTML → plain text conversion.
func htmlToPlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = reBR.ReplaceAllString(s, "\n")
	s = rePreOpen.ReplaceAllString(s, "\n\n")
	s = rePreClose.ReplaceAllString(s, "\n\n")
	s = reLiOpen.ReplaceAllString(s, "\n- ")
	s = reLiClose.ReplaceAllString(s, "\n")
	s = reBlockClose.ReplaceAllString(s, "\n\n")

	// Unescape only after stripping tags, so "&lt;int&gt;" survives as "<int>".
	s = reStripTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")

	// Keep leading whitespace; code blocks need it.
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRightFunc(lines[i], unicode.IsSpace)
	}
	s = strings.Join(lines, "\n")

	s = reManyNewline.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
