package sanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/agorahub/internal/app/system/sanitize"
)

func TestContribution_PlainTextUnchanged(t *testing.T) {
	in := "On the nature of distributed agreement."
	if got := sanitize.Contribution(in); got != in {
		t.Errorf("plain text changed: got %q", got)
	}
}

func TestContribution_StripsScript(t *testing.T) {
	got := sanitize.Contribution("<p>hello</p><script>alert('x')</script>")
	if got != "<p>hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestContribution_StripsEventHandlers(t *testing.T) {
	in := `<p onclick="alert('x')">hello</p>`
	got := sanitize.Contribution(in)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestContribution_KeepsBasicFormatting(t *testing.T) {
	in := "<p><strong>Thesis</strong> and <em>antithesis</em></p><ul><li>one</li></ul>"
	if got := sanitize.Contribution(in); got != in {
		t.Errorf("expected formatting preserved, got %q", got)
	}
}

func TestContribution_LinksGetNoFollow(t *testing.T) {
	got := sanitize.Contribution(`<a href="https://example.com">ref</a>`)
	if !strings.Contains(got, "nofollow") || !strings.Contains(got, "https://example.com") {
		t.Errorf("expected nofollow link preserved, got %q", got)
	}
}
