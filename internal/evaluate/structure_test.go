package evaluate

import (
	"strings"
	"testing"
)

func TestStructure_AllLandmarksAndLang(t *testing.T) {
	doc := mustParse(t, `<html lang="en"><body>
		<header>Top</header>
		<nav>Menu</nav>
		<main>Content</main>
		<footer>Bottom</footer>
	</body></html>`)
	result := Structure(doc, DefaultPolicy())

	if result.Score != 100 || len(result.Issues) != 0 {
		t.Errorf("expected clean result, got score %d with %d issues", result.Score, len(result.Issues))
	}
}

func TestStructure_AriaRolesSatisfyLandmarks(t *testing.T) {
	doc := mustParse(t, `<html lang="en"><body>
		<div role="banner">Top</div>
		<div role="navigation">Menu</div>
		<div role="main">Content</div>
		<div role="contentinfo">Bottom</div>
	</body></html>`)
	result := Structure(doc, DefaultPolicy())

	if result.Score != 100 {
		t.Errorf("ARIA landmark roles should satisfy the check, got score %d", result.Score)
	}
}

func TestStructure_MissingEverything(t *testing.T) {
	doc := mustParse(t, `<html><body><div>bare page</div></body></html>`)
	result := Structure(doc, DefaultPolicy())

	// 4 landmarks at 20 each plus 20 for missing lang clamps to 0.
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if len(result.Issues) != 5 {
		t.Errorf("expected 5 issues, got %d", len(result.Issues))
	}
}

func TestStructure_MissingMainOnly(t *testing.T) {
	doc := mustParse(t, `<html lang="de"><body>
		<header>Top</header>
		<nav>Menu</nav>
		<footer>Bottom</footer>
	</body></html>`)
	result := Structure(doc, DefaultPolicy())

	if result.Score != 80 {
		t.Errorf("expected score 80, got %d", result.Score)
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0].Message, "main") {
		t.Errorf("expected a single main-landmark issue, got %+v", result.Issues)
	}
}

func TestStructure_LandmarkIssueOrder(t *testing.T) {
	doc := mustParse(t, `<html><body></body></html>`)
	result := Structure(doc, DefaultPolicy())

	wantOrder := []string{"header", "nav", "main", "footer"}
	if len(result.Issues) < len(wantOrder) {
		t.Fatalf("expected at least %d issues, got %d", len(wantOrder), len(result.Issues))
	}
	for i, tag := range wantOrder {
		if !strings.Contains(result.Issues[i].Message, tag) {
			t.Errorf("issue %d: expected %q landmark, got %q", i, tag, result.Issues[i].Message)
		}
	}
}

func TestStructure_BlankLangIsMissing(t *testing.T) {
	doc := mustParse(t, `<html lang="  "><body>
		<header>a</header><nav>b</nav><main>c</main><footer>d</footer>
	</body></html>`)
	result := Structure(doc, DefaultPolicy())

	if result.Score != 80 {
		t.Errorf("whitespace-only lang should be treated as missing, got score %d", result.Score)
	}
}
