package dto

// 文章生成端点的请求响应沿用租户站点约定的 camelCase 字段名

// SourceContentRequest 人工提交的新闻素材
type SourceContentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FullContent string `json:"fullContent,omitempty"`
	SourceName  string `json:"sourceName"`
	URL         string `json:"url,omitempty"`
}

// GenerateArticleRequest 文章生成请求
type GenerateArticleRequest struct {
	CategoryID            string                `json:"categoryId" binding:"required"`
	SourceContent         *SourceContentRequest `json:"sourceContent,omitempty"`
	UseWebSearch          bool                  `json:"useWebSearch"`
	ArticleSpecificPrompt string                `json:"articleSpecificPrompt,omitempty"`
	JournalistName        string                `json:"journalistName,omitempty"`
	JournalistID          string                `json:"journalistId,omitempty"`
	GenerateSEO           bool                  `json:"generateSEO"`
	GenerateImage         bool                  `json:"generateImage"`
	TargetWordCount       int                   `json:"targetWordCount,omitempty"`
	WritingStyle          string                `json:"writingStyle,omitempty"`
}

// GeneratedArticle 响应中的文章体
type GeneratedArticle struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt,omitempty"`
	Tags             []string `json:"tags"`
	Slug             string   `json:"slug"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	ImageAttribution string   `json:"imageAttribution,omitempty"`
}

// GenerateArticleResponse 生成成功响应
type GenerateArticleResponse struct {
	Success          bool              `json:"success"`
	Article          *GeneratedArticle `json:"article"`
	CreditsUsed      int               `json:"creditsUsed"`
	CreditsRemaining int               `json:"creditsRemaining"`
	GenerationTimeMs int64             `json:"generationTimeMs"`
	Model            string            `json:"model"`
}

// GenerateArticleError 生成失败响应
// 额度不足时附带 creditsRequired 供调用方引导充值。
type GenerateArticleError struct {
	Success          bool   `json:"success"`
	Error            string `json:"error"`
	CreditsRequired  int    `json:"creditsRequired,omitempty"`
	CreditsUsed      int    `json:"creditsUsed"`
	CreditsRemaining int    `json:"creditsRemaining"`
	GenerationTimeMs int64  `json:"generationTimeMs"`
	Model            string `json:"model"`
}
