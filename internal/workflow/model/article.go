package model

// ArticleGenerateInput 文章生成工作流输入
// Prompt 由提示词组装器产出，工作流层只负责调用与采样参数。
type ArticleGenerateInput struct {
	Provider string
	Model    string

	Prompt string

	Temperature *float32
	MaxTokens   *int
}
