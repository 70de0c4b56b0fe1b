package toc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/repokit/internal/toc"
)

func renderMarkdown(t *testing.T, markdown string) string {
	t.Helper()
	headings, scanError := toc.LineScanner{}.Scan(strings.NewReader(markdown))
	if scanError != nil {
		t.Fatalf("scan: %v", scanError)
	}
	return toc.Builder{}.Render(headings)
}

func TestRenderNestsSubheadings(t *testing.T) {
	expected := strings.Join([]string{
		"<details>",
		"  <summary>Table of Contents</summary>",
		"  <ol>",
		`    <li><a href="#a">A</a></li>`,
		"  <ul>",
		`    <li><a href="#b">B</a></li>`,
		"    </ul>",
		`    <li><a href="#c">C</a></li>`,
		"  </ol>",
		"</details>",
	}, "\n")

	rendered := renderMarkdown(t, "## A\n### B\n## C\n")
	if rendered != expected {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", rendered, expected)
	}
}

func TestRenderFlatHeadingsStayInsideOrderedList(t *testing.T) {
	rendered := renderMarkdown(t, "# Title\n## One\ntext\n## Two\n## Three\n")
	if count := strings.Count(rendered, "<li>"); count != 3 {
		t.Fatalf("expected 3 list items, got %d:\n%s", count, rendered)
	}
	if strings.Contains(rendered, "ul>") {
		t.Fatalf("expected no unordered lists:\n%s", rendered)
	}
	if strings.Contains(rendered, "#title") {
		t.Fatalf("level one markdown headings must not be listed:\n%s", rendered)
	}
}

func TestRenderWithoutHeadingsYieldsEmptyList(t *testing.T) {
	expected := "<details>\n  <summary>Table of Contents</summary>\n  <ol>\n  </ol>\n</details>"
	if rendered := renderMarkdown(t, "plain text\n# only a title\n"); rendered != expected {
		t.Fatalf("unexpected output:\n%s", rendered)
	}
}

func TestRenderLevelJumpOpensSeveralLists(t *testing.T) {
	expected := strings.Join([]string{
		"<details>",
		"  <summary>Contents</summary>",
		"  <ol>",
		`    <li><a href="#top">Top</a></li>`,
		"  <ul>",
		"    <ul>",
		"      <ul>",
		`        <li><a href="#deep">Deep</a></li>`,
		"        </ul>",
		"      </ul>",
		"    </ul>",
		"  </ol>",
		"</details>",
	}, "\n")

	headings, _ := toc.LineScanner{}.Scan(strings.NewReader("## Top\n##### Deep\n"))
	rendered := toc.Builder{Summary: "Contents"}.Render(headings)
	if rendered != expected {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", rendered, expected)
	}
}

func TestRenderBalancesListTags(t *testing.T) {
	markdown := "## A\n### B\n#### C\n## D\n#### E\n### F\n"
	rendered := renderMarkdown(t, markdown)
	if opened, closed := strings.Count(rendered, "<ul>"), strings.Count(rendered, "</ul>"); opened != closed {
		t.Fatalf("unbalanced lists: %d opened, %d closed\n%s", opened, closed, rendered)
	}
}

func TestGenerateReadsDocument(t *testing.T) {
	documentPath := filepath.Join(t.TempDir(), "README.md")
	if writeError := os.WriteFile(documentPath, []byte("## Hello, World!\n"), 0o600); writeError != nil {
		t.Fatalf("write: %v", writeError)
	}
	rendered, generateError := toc.Generate(documentPath, nil, toc.Builder{})
	if generateError != nil {
		t.Fatalf("Generate error: %v", generateError)
	}
	if !strings.Contains(rendered, `<li><a href="#hello-world">Hello, World!</a></li>`) {
		t.Fatalf("missing item:\n%s", rendered)
	}
}

func TestGenerateMissingDocument(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "missing.md")
	if _, generateError := toc.Generate(missingPath, toc.LineScanner{}, toc.Builder{}); generateError == nil {
		t.Fatalf("expected error for missing document")
	} else if !strings.Contains(generateError.Error(), missingPath) {
		t.Fatalf("expected error to name the path, got %v", generateError)
	}
}
