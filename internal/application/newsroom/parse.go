package newsroom

import (
	"strings"

	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/workflow/node"
)

// ParsedArticle 生成结果解析产物，slug 仅为候选，尚未去重
type ParsedArticle struct {
	Title   string
	Content string
	Excerpt string
	Tags    []string
	Slug    string
}

const (
	maxExcerptRunes = 200
	maxSlugChars    = 80
	maxTags         = 5
)

// Parse 解析模型输出
// 输出契约约定 TITLE/CONTENT/TAGS 分节，但模型偶有漂移，
// 任何缺节都用合理默认值补齐，保证标题、正文、slug 非空。
func Parse(raw string, src *source.Content) ParsedArticle {
	var (
		title        string
		tags         []string
		contentLines []string
		inContent    bool
	)

	for _, line := range strings.Split(raw, "\n") {
		if rest, ok := matchMarker(line, "TITLE"); ok {
			if title == "" {
				title = rest
			}
			inContent = false
			continue
		}
		if rest, ok := matchMarker(line, "CONTENT"); ok {
			inContent = true
			if rest != "" {
				contentLines = append(contentLines, rest)
			}
			continue
		}
		if rest, ok := matchMarker(line, "TAGS"); ok {
			inContent = false
			if len(tags) == 0 {
				tags = splitTags(rest)
			}
			continue
		}
		if inContent {
			contentLines = append(contentLines, line)
		}
	}

	content := strings.TrimSpace(strings.Join(contentLines, "\n"))
	if content == "" {
		content = fallbackContent(raw)
	}

	if title == "" {
		title = fallbackTitle(content, src)
	}
	if content == "" {
		content = title
	}

	return ParsedArticle{
		Title:   title,
		Content: content,
		Excerpt: buildExcerpt(content),
		Tags:    tags,
		Slug:    Slugify(title),
	}
}

// matchMarker 识别分节标记，容忍大小写、markdown 强调符与冒号变体
func matchMarker(line, label string) (rest string, ok bool) {
	clean := strings.Trim(strings.TrimSpace(line), "*#_ ")
	upper := strings.ToUpper(clean)
	if !strings.HasPrefix(upper, label) {
		return "", false
	}

	tail := strings.TrimSpace(clean[len(label):])
	if tail == "" {
		return "", true
	}
	if strings.HasPrefix(tail, ":") || strings.HasPrefix(tail, "：") || strings.HasPrefix(tail, "-") {
		return strings.TrimSpace(strings.TrimLeft(tail, ":：-* ")), true
	}
	return "", false
}

// fallbackContent 无 CONTENT 标记时把整段输出当正文，剔除散落的标记行
func fallbackContent(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if _, ok := matchMarker(line, "TITLE"); ok {
			continue
		}
		if _, ok := matchMarker(line, "TAGS"); ok {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func fallbackTitle(content string, src *source.Content) string {
	if src != nil && strings.TrimSpace(src.Title) != "" {
		return strings.TrimSpace(src.Title)
	}
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return node.TruncateByRunes(trimmed, 120)
		}
	}
	return "Local News Update"
}

func buildExcerpt(content string) string {
	for _, para := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			return node.TruncateByRunes(trimmed, maxExcerptRunes)
		}
	}
	return ""
}

func splitTags(s string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, t := range strings.Split(s, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// Slugify 由标题派生 slug 候选：小写、去非字母数字、连字符连接
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		if b.Len() >= maxSlugChars {
			break
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "article"
	}
	return slug
}
