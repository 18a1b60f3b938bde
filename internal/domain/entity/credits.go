package entity

// CreditDecision 信用额度预检结果，由外部额度服务返回
type CreditDecision struct {
	Allowed          bool   `json:"allowed"`
	CreditsRemaining int    `json:"creditsRemaining"`
	Message          string `json:"message,omitempty"`
}

// CreditDeduction 信用额度扣减请求
type CreditDeduction struct {
	TenantID    string         `json:"tenantId"`
	Action      string         `json:"action"`
	Quantity    int            `json:"quantity"`
	Description string         `json:"description,omitempty"`
	ArticleID   string         `json:"articleId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// 计费动作
const (
	CreditActionArticle = "article_generation"
)
