package prompt

import (
	"fmt"
	"strings"

	"localpress-ai-api/internal/application/newsroom/source"
)

// Context 组装一次提示词所需的全部输入，随请求构建，不持久化
type Context struct {
	TenantName  string
	ServiceArea string

	// 三级编辑指令，按层级从高到低
	EditorDirective   string
	CategoryDirective string
	ArticlePrompt     string

	CategoryName string

	JournalistName  string
	WritingStyle    string
	TargetWordCount int

	Source        *source.Content
	FromWebSearch bool
	Assessment    source.Assessment
}

// Compose 组装生成提示词，纯字符串拼接，无 I/O
// 三级编辑指令按固定顺序各自带标签拼入，之后按模式二选一渲染，
// 最后统一追加输出格式契约。
func Compose(pc Context) string {
	var b strings.Builder

	area := strings.TrimSpace(pc.ServiceArea)
	if area == "" {
		area = "the local community"
	}

	fmt.Fprintf(&b, "Write a news article for %s, a local news site serving %s.\n",
		orDefault(pc.TenantName, "a local newspaper"), area)
	if cat := strings.TrimSpace(pc.CategoryName); cat != "" {
		fmt.Fprintf(&b, "The article belongs to the \"%s\" section.\n", cat)
	}

	b.WriteString(renderDirectives(pc))
	b.WriteString(renderPersona(pc))

	switch m := ResolveMode(pc.Assessment, pc.FromWebSearch).(type) {
	case LocalInterest:
		b.WriteString(renderLocalInterest(pc))
	case SourceGrounded:
		b.WriteString(renderSourceGrounded(pc, m))
	}

	b.WriteString(renderOutputContract())

	return b.String()
}

// renderDirectives 三级编辑指令，顺序固定：主编、栏目、单篇
func renderDirectives(pc Context) string {
	var b strings.Builder

	if d := strings.TrimSpace(pc.EditorDirective); d != "" {
		b.WriteString("\nEDITOR-IN-CHIEF DIRECTIVE (applies to the whole site):\n")
		b.WriteString(d)
		b.WriteString("\n")
	}
	if d := strings.TrimSpace(pc.CategoryDirective); d != "" {
		b.WriteString("\nCATEGORY DIRECTIVE (applies to this section):\n")
		b.WriteString(d)
		b.WriteString("\n")
	}
	if d := strings.TrimSpace(pc.ArticlePrompt); d != "" {
		b.WriteString("\nARTICLE INSTRUCTION (applies to this article only):\n")
		b.WriteString(d)
		b.WriteString("\n")
	}

	return b.String()
}

func renderPersona(pc Context) string {
	var b strings.Builder

	if name := strings.TrimSpace(pc.JournalistName); name != "" {
		fmt.Fprintf(&b, "\nWrite under the byline of %s.\n", name)
	}
	if style := strings.TrimSpace(pc.WritingStyle); style != "" {
		fmt.Fprintf(&b, "Writing style: %s.\n", style)
	}

	return b.String()
}

// renderLocalInterest 无素材模式
// 明确禁止提及素材缺失，篇幅沿用中等档。
func renderLocalInterest(pc Context) string {
	var b strings.Builder

	area := strings.TrimSpace(pc.ServiceArea)
	if area == "" {
		area = "the local community"
	}

	b.WriteString("\nNo current source material is available for this topic. ")
	fmt.Fprintf(&b, "Write an original evergreen piece of local interest, drawing on general knowledge about %s and places like it.\n", area)
	b.WriteString("Never mention the absence of sources, reporting, or information. The reader must not be able to tell this article was written without source material.\n")
	b.WriteString("Do not invent specific recent events, named individuals, quotes, or statistics. Keep claims general and timeless.\n")
	b.WriteString(renderLengthBand(source.RichnessModerate, pc.TargetWordCount))

	if hints := topicHints(pc.CategoryName); hints != "" {
		b.WriteString("Possible angles for this section: ")
		b.WriteString(hints)
		b.WriteString("\n")
	}

	return b.String()
}

// renderSourceGrounded 有素材模式，附防虚构协议
func renderSourceGrounded(pc Context, m SourceGrounded) string {
	var b strings.Builder

	b.WriteString("\nSOURCE MATERIAL:\n")
	if pc.Source != nil {
		if t := strings.TrimSpace(pc.Source.Title); t != "" {
			fmt.Fprintf(&b, "Headline: %s\n", t)
		}
		if s := strings.TrimSpace(pc.Source.SourceName); s != "" {
			fmt.Fprintf(&b, "Source: %s\n", s)
		}
		if d := strings.TrimSpace(pc.Source.Description); d != "" {
			fmt.Fprintf(&b, "Summary: %s\n", d)
		}
		if f := strings.TrimSpace(pc.Source.FullContent); f != "" {
			b.WriteString(f)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nSOURCE FIDELITY RULES:\n")
	b.WriteString("Every factual claim in the article must come from the source material above.\n")
	b.WriteString("Do not invent names, quotes, statistics, dates, or predictions that are not in the source material.\n")
	b.WriteString("You may explain the significance of stated facts, give context for terms the source uses, and connect facts the source states, as long as you add no new facts.\n")

	if m.FromWebSearch {
		b.WriteString("Write in a natural journalistic voice. Do not use \"according to\" phrasing or otherwise name the search results as your source.\n")
	} else if pc.Source != nil {
		name := strings.TrimSpace(pc.Source.SourceName)
		if name == "" {
			name = "the provided source"
		}
		fmt.Fprintf(&b, "Attribute the material in every paragraph that states facts, using phrasing such as \"According to %s\".\n", name)
	}

	b.WriteString(renderLengthBand(m.Richness, pc.TargetWordCount))

	return b.String()
}

func renderLengthBand(richness source.Richness, targetWordCount int) string {
	var band string
	switch richness {
	case source.RichnessRich:
		band = "Write 8-10 substantial paragraphs."
	case source.RichnessModerate:
		band = "Write 5-8 paragraphs."
	default:
		band = "Write 4-7 paragraphs."
	}
	if targetWordCount > 0 {
		return fmt.Sprintf("%s Aim for approximately %d words.\n", band, targetWordCount)
	}
	return band + "\n"
}

// topicHints 无素材模式下按栏目给的选题提示
func topicHints(category string) string {
	switch normalizeCategory(category) {
	case "events":
		return "seasonal traditions, recurring community gatherings, how local events have shaped the area."
	case "business":
		return "what makes the local business climate distinctive, long-standing local industries, practical guides for residents."
	case "sports":
		return "local sports culture, community recreation, the role of school and amateur athletics in the area."
	case "food", "dining":
		return "regional food traditions, what defines the local dining scene, seasonal ingredients common to the area."
	case "schools", "education":
		return "how local schools fit into community life, educational resources available to families, the history of education in the area."
	case "community":
		return "neighborhood institutions, volunteer culture, what newcomers should know about the area."
	default:
		return "local history, geography and landmarks, community character, practical knowledge useful to residents."
	}
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// renderOutputContract 两种模式共用的输出格式约定
func renderOutputContract() string {
	return `
Respond in exactly this format:

TITLE: <the headline>
CONTENT:
<the full article text>
TAGS: <3 to 5 comma-separated topical tags>

Headline rules: the headline must say what happened, include a concrete who, what, or where, stay under 12 words, and never use filler words like "Breaking" or "Update".
`
}

func orDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
