package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localpress-ai-api/internal/application/newsroom/source"
)

func richContent(words int) *source.Content {
	return &source.Content{
		Title:       "Council Approves Downtown Redevelopment Plan",
		Description: "The council voted 5-2 to approve the plan.",
		FullContent: strings.TrimSpace(strings.Repeat("word ", words)),
		SourceName:  "Daily Gazette",
	}
}

func contextFor(c *source.Content, fromWebSearch bool) Context {
	return Context{
		TenantName:    "Bergen Local News",
		ServiceArea:   "Bergen County, New Jersey",
		CategoryName:  "Business",
		Source:        c,
		FromWebSearch: fromWebSearch,
		Assessment:    source.Assess(c),
	}
}

func TestComposeLocalInterestMode(t *testing.T) {
	out := Compose(contextFor(nil, false))

	assert.Contains(t, out, "No current source material")
	assert.Contains(t, out, "Never mention the absence of sources")
	assert.NotContains(t, out, "SOURCE FIDELITY RULES")
	assert.NotContains(t, out, "SOURCE MATERIAL:")
	assert.Contains(t, out, "Write 5-8 paragraphs")
}

func TestComposeSourceGroundedManual(t *testing.T) {
	out := Compose(contextFor(richContent(1600), false))

	assert.Contains(t, out, "SOURCE MATERIAL:")
	assert.Contains(t, out, "SOURCE FIDELITY RULES:")
	assert.Contains(t, out, `"According to Daily Gazette"`)
	assert.Contains(t, out, "Write 8-10 substantial paragraphs")
	assert.NotContains(t, out, "No current source material")
}

func TestComposeSourceGroundedWebSearch(t *testing.T) {
	out := Compose(contextFor(richContent(900), true))

	assert.Contains(t, out, "SOURCE FIDELITY RULES:")
	assert.Contains(t, out, "natural journalistic voice")
	assert.NotContains(t, out, "According to")
	assert.Contains(t, out, "Write 5-8 paragraphs")
}

func TestComposeModesAreExclusive(t *testing.T) {
	for _, pc := range []Context{
		contextFor(nil, false),
		contextFor(richContent(500), false),
		contextFor(richContent(2000), true),
	} {
		out := Compose(pc)
		grounded := strings.Contains(out, "SOURCE FIDELITY RULES")
		local := strings.Contains(out, "No current source material")
		assert.NotEqual(t, grounded, local, "exactly one prompt mode must render")
	}
}

func TestComposeDirectiveOrder(t *testing.T) {
	pc := contextFor(nil, false)
	pc.EditorDirective = "Keep a neutral tone sitewide."
	pc.CategoryDirective = "Focus on small businesses."
	pc.ArticlePrompt = "Cover the new bakery on Main Street."

	out := Compose(pc)

	editor := strings.Index(out, "EDITOR-IN-CHIEF DIRECTIVE")
	category := strings.Index(out, "CATEGORY DIRECTIVE")
	article := strings.Index(out, "ARTICLE INSTRUCTION")

	require.GreaterOrEqual(t, editor, 0)
	require.GreaterOrEqual(t, category, 0)
	require.GreaterOrEqual(t, article, 0)
	assert.Less(t, editor, category)
	assert.Less(t, category, article)

	assert.Contains(t, out, "Keep a neutral tone sitewide.")
	assert.Contains(t, out, "Focus on small businesses.")
	assert.Contains(t, out, "Cover the new bakery on Main Street.")
}

func TestComposeOmitsEmptyDirectives(t *testing.T) {
	out := Compose(contextFor(nil, false))

	assert.NotContains(t, out, "EDITOR-IN-CHIEF DIRECTIVE")
	assert.NotContains(t, out, "CATEGORY DIRECTIVE")
	assert.NotContains(t, out, "ARTICLE INSTRUCTION")
}

func TestComposeOutputContract(t *testing.T) {
	out := Compose(contextFor(richContent(400), false))

	assert.Contains(t, out, "TITLE: <the headline>")
	assert.Contains(t, out, "CONTENT:")
	assert.Contains(t, out, "TAGS:")
	assert.Contains(t, out, "under 12 words")
	assert.Contains(t, out, `"Breaking"`)
}

func TestComposePersonaAndLength(t *testing.T) {
	pc := contextFor(richContent(400), false)
	pc.JournalistName = "Sam Rivera"
	pc.WritingStyle = "conversational"
	pc.TargetWordCount = 600

	out := Compose(pc)

	assert.Contains(t, out, "byline of Sam Rivera")
	assert.Contains(t, out, "conversational")
	assert.Contains(t, out, "approximately 600 words")
	assert.Contains(t, out, "Write 4-7 paragraphs")
}

func TestResolveModeBoundary(t *testing.T) {
	limited := source.Assessment{WordCount: 120, Richness: source.RichnessLimited}
	adequate := source.Assessment{WordCount: 400, Richness: source.RichnessAdequate}

	_, isLocal := ResolveMode(limited, false).(LocalInterest)
	assert.True(t, isLocal)

	m, isGrounded := ResolveMode(adequate, true).(SourceGrounded)
	require.True(t, isGrounded)
	assert.True(t, m.FromWebSearch)
	assert.Equal(t, source.RichnessAdequate, m.Richness)
}
