package render

import (
	"context"
	"strings"
	"testing"

	"cfq/codeforces"
)

func TestHTMLRenderer_RenderBlogEntry_Sanity(t *testing.T) {
	t.Parallel()

	r := NewHTMLRenderer()

	content := "<p>Hello <b>everyone</b>&nbsp;&amp; welcome.</p>" +
		"<ul><li>One</li><li>Two</li></ul>" +
		"<pre>int main() {\n  return 0;\n}</pre>" +
		"<p>Constraints: &lt;int&gt;</p>"
	e := codeforces.BlogEntry{
		ID:                  79,
		Title:               "<p>Codeforces Round #1</p>",
		AuthorHandle:        "MikeMirzayanov",
		CreationTimeSeconds: 1266588000,
		Tags:                []string{"round", " ", "announcement"},
		Rating:              42,
		Content:             &content,
	}

	out, err := r.RenderBlogEntry(context.Background(), e)
	if err != nil {
		t.Fatalf("RenderBlogEntry() error = %v", err)
	}

	if !strings.HasPrefix(out, "Codeforces Round #1\n") {
		t.Fatalf("expected title first line, got: %q", out)
	}
	assertContains(t, out, "By MikeMirzayanov, 2010-02-19")
	assertContains(t, out, "URL: https://codeforces.com/blog/entry/79")
	assertContains(t, out, "Tags: round, announcement")
	assertContains(t, out, "Rating: +42")

	assertNotContains(t, out, "<p>")
	assertNotContains(t, out, "&nbsp;")
	assertContains(t, out, "Hello everyone & welcome.")
	assertContains(t, out, "- One")
	assertContains(t, out, "- Two")
	assertContains(t, out, "  return 0;")
	assertContains(t, out, "Constraints: <int>")
}

func TestHTMLRenderer_RenderBlogEntry_ShortForm(t *testing.T) {
	t.Parallel()

	out, err := NewHTMLRenderer().RenderBlogEntry(context.Background(), codeforces.BlogEntry{ID: 5, Rating: -3})
	if err != nil {
		t.Fatalf("RenderBlogEntry() error = %v", err)
	}
	assertContains(t, out, "Blog entry\n")
	assertContains(t, out, "Rating: -3")
	assertNotContains(t, out, "Tags:")
	assertNotContains(t, out, "By ")
}

func TestHTMLRenderer_RenderComment(t *testing.T) {
	t.Parallel()

	parent := int64(10)
	c := codeforces.Comment{
		ID:                  11,
		CommentatorHandle:   "Petr",
		Rating:              5,
		CreationTimeSeconds: 1266588000,
		ParentCommentID:     &parent,
		Text:                "<div>first line<br/>second line</div>",
	}

	out, err := NewHTMLRenderer().RenderComment(context.Background(), c)
	if err != nil {
		t.Fatalf("RenderComment() error = %v", err)
	}
	assertContains(t, out, "#11 Petr (+5)")
	assertContains(t, out, "reply to #10")
	assertContains(t, out, "\n    first line\n    second line\n")
}

func TestHTMLRenderer_WrapsProseButNotCode(t *testing.T) {
	t.Parallel()

	r := &HTMLRenderer{Width: 10}
	content := "<p>alpha beta gamma delta</p><pre>    keep this code line intact</pre>"
	out, err := r.RenderBlogEntry(context.Background(), codeforces.BlogEntry{Title: "T", Content: &content})
	if err != nil {
		t.Fatalf("RenderBlogEntry() error = %v", err)
	}
	assertContains(t, out, "alpha beta\ngamma\ndelta")
	assertContains(t, out, "    keep this code line intact")
}

func TestHTMLRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTMLRenderer().RenderComment(ctx, codeforces.Comment{}); err == nil {
		t.Fatalf("RenderComment() expected error for canceled context, got nil")
	}
}

func assertContains(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s\n--- end ---", sub, s)
	}
}

func assertNotContains(t *testing.T, s, sub string) {
	t.Helper()
	if strings.Contains(s, sub) {
		t.Fatalf("expected output to NOT contain %q\n--- output ---\n%s\n--- end ---", sub, s)
	}
}
