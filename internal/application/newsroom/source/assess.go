package source

import (
	"strings"

	"localpress-ai-api/internal/workflow/node"
)

// 丰富度阈值，按拼接后的总词数划分
const (
	richThreshold     = 1500
	moderateThreshold = 800
	adequateThreshold = 300
)

// Assess 评估素材丰富度，纯函数，素材缺失时返回 limited
func Assess(c *Content) Assessment {
	if c == nil {
		return Assessment{WordCount: 0, Richness: RichnessLimited}
	}

	joined := strings.Join([]string{c.Title, c.Description, c.FullContent}, " ")
	count := node.CountWords(joined)

	return Assessment{WordCount: count, Richness: richnessFor(count)}
}

func richnessFor(wordCount int) Richness {
	switch {
	case wordCount > richThreshold:
		return RichnessRich
	case wordCount > moderateThreshold:
		return RichnessModerate
	case wordCount > adequateThreshold:
		return RichnessAdequate
	default:
		return RichnessLimited
	}
}
