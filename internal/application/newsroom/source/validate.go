package source

// MinValidWords 素材词数下限，低于该值视为不足以支撑成稿
const MinValidWords = 100

// Validate 校验素材是否足以支撑生成
// 对人工提交的素材是硬性门槛，对检索得到的素材仅作告警参考。
func Validate(c *Content) Validation {
	if c == nil {
		return Validation{Valid: false, Reason: "no source content provided", WordCount: 0}
	}

	assessment := Assess(c)
	if assessment.WordCount < MinValidWords {
		return Validation{
			Valid:     false,
			Reason:    "source content is too short to support an article",
			WordCount: assessment.WordCount,
		}
	}

	return Validation{Valid: true, WordCount: assessment.WordCount}
}
