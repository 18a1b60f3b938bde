// Package source 负责新闻素材的获取与质量评估
package source

import "time"

// Content 一次生成所依据的新闻素材，产出后不再修改
type Content struct {
	Title       string
	Description string
	FullContent string
	SourceName  string
	URL         string
}

// FeedItem RSS 检索得到的单条新闻条目
type FeedItem struct {
	Title       string
	Description string
	Link        string
	Source      string
	Published   time.Time
}

// Richness 素材丰富度，决定提示词模式与目标篇幅
type Richness string

const (
	RichnessRich     Richness = "rich"
	RichnessModerate Richness = "moderate"
	RichnessAdequate Richness = "adequate"
	RichnessLimited  Richness = "limited"
)

// Assessment 素材质量评估结果
type Assessment struct {
	WordCount int
	Richness  Richness
}

// Validation 素材有效性校验结果
type Validation struct {
	Valid     bool
	Reason    string
	WordCount int
}
