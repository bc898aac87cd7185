package evaluate

import (
	"testing"

	"github.com/web4all/web4all/internal/model"
)

func TestLinks_NoLinks_Neutral(t *testing.T) {
	doc := mustParse(t, `<body><p>plain text</p></body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 100 || len(result.Issues) != 0 {
		t.Errorf("expected neutral result, got score %d with %d issues", result.Score, len(result.Issues))
	}
}

func TestLinks_DescriptiveText_Clean(t *testing.T) {
	doc := mustParse(t, `<body>
		<a href="/pricing">View pricing plans</a>
		<a href="/docs">Read the documentation</a>
	</body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 100 || len(result.Issues) != 0 {
		t.Errorf("expected clean result, got score %d with %d issues", result.Score, len(result.Issues))
	}
}

func TestLinks_EmptyText_Critical(t *testing.T) {
	doc := mustParse(t, `<body><a href="/x"></a><a href="/y">About the project</a></body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 50 {
		t.Errorf("expected score 50, got %d", result.Score)
	}
	if len(result.Issues) != 1 || result.Issues[0].Severity != model.SeverityCritical {
		t.Errorf("empty link text should be critical, got %+v", result.Issues)
	}
}

func TestLinks_ImageOnlyLink_Skipped(t *testing.T) {
	doc := mustParse(t, `<body><a href="/home"><img src="logo.png" alt="Home"></a></body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 100 || len(result.Issues) != 0 {
		t.Errorf("image-only link should be judged by the images category, got score %d with %d issues", result.Score, len(result.Issues))
	}
}

func TestLinks_GenericText_EachInstanceFlagged(t *testing.T) {
	// Two "click here" links to different pages: both are flagged, and
	// each flagged instance lowers the score.
	doc := mustParse(t, `<body>
		<a href="/report">click here</a>
		<a href="/signup">Click Here</a>
	</body>`)
	result := Links(doc, DefaultPolicy())

	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(result.Issues))
	}
	for _, issue := range result.Issues {
		if issue.Severity != model.SeverityWarning {
			t.Errorf("generic link text should be a warning, got %s", issue.Severity)
		}
	}
	if result.Score != 0 {
		t.Errorf("both links flagged, expected score 0, got %d", result.Score)
	}
}

func TestLinks_ShortText(t *testing.T) {
	doc := mustParse(t, `<body><a href="/faq">Go</a><a href="/about">About the team</a></body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 50 {
		t.Errorf("expected score 50, got %d", result.Score)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(result.Issues))
	}
}

func TestLinks_DuplicateTextDifferentDestinations(t *testing.T) {
	doc := mustParse(t, `<body>
		<a href="/q1-report">Quarterly report</a>
		<a href="/q2-report">Quarterly report</a>
	</body>`)
	result := Links(doc, DefaultPolicy())

	if len(result.Issues) != 2 {
		t.Fatalf("expected both instances flagged, got %d issues", len(result.Issues))
	}
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
}

func TestLinks_DuplicateTextSameDestination_Allowed(t *testing.T) {
	doc := mustParse(t, `<body>
		<a href="/report">Quarterly report</a>
		<a href="/report">Quarterly report</a>
	</body>`)
	result := Links(doc, DefaultPolicy())

	if result.Score != 100 || len(result.Issues) != 0 {
		t.Errorf("same destination should not be flagged, got score %d with %d issues", result.Score, len(result.Issues))
	}
}

func TestLinks_SingleFlagPerLink(t *testing.T) {
	// "here" is both generic and short; it must be flagged exactly once.
	doc := mustParse(t, `<body><a href="/x">here</a></body>`)
	result := Links(doc, DefaultPolicy())

	if len(result.Issues) != 1 {
		t.Errorf("expected exactly one issue per link, got %d", len(result.Issues))
	}
}
