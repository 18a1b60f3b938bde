// Package prompt 负责组装文章生成提示词
package prompt

import "localpress-ai-api/internal/application/newsroom/source"

// Mode 生成模式，二选一，由素材丰富度一次性决定
type Mode interface {
	mode()
}

// LocalInterest 无素材模式，依靠通识写本地泛兴趣稿
type LocalInterest struct{}

func (LocalInterest) mode() {}

// SourceGrounded 有素材模式，全部事实必须可溯源
type SourceGrounded struct {
	Richness      source.Richness
	FromWebSearch bool
}

func (SourceGrounded) mode() {}

// ResolveMode 根据评估结果选择生成模式
func ResolveMode(assessment source.Assessment, fromWebSearch bool) Mode {
	if assessment.Richness == source.RichnessLimited {
		return LocalInterest{}
	}
	return SourceGrounded{Richness: assessment.Richness, FromWebSearch: fromWebSearch}
}
