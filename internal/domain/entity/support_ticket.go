package entity

import (
	"time"
)

// TicketStatus 工单状态
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusWaiting    TicketStatus = "waiting"
	TicketStatusResolved   TicketStatus = "resolved"
)

// TicketPriority 工单优先级
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketMode 工单会话模式
type TicketMode string

const (
	// TicketModeManual 人工客服接管
	TicketModeManual TicketMode = "manual"
	// TicketModeAutopilot 无人值守，由 AI 自动续聊
	TicketModeAutopilot TicketMode = "autopilot"
)

// TriageClassification 分诊分类
type TriageClassification string

const (
	TriageKnownIssue TriageClassification = "known_issue"
	TriageNonIssue   TriageClassification = "non_issue"
	TriageHowTo      TriageClassification = "how_to"
	TriageRealBug    TriageClassification = "real_bug"
	TriageUnclear    TriageClassification = "unclear"
)

// TriageConfidence 分诊置信度
type TriageConfidence string

const (
	TriageConfidenceHigh   TriageConfidence = "high"
	TriageConfidenceMedium TriageConfidence = "medium"
	TriageConfidenceLow    TriageConfidence = "low"
)

// ValidTicketStatus 检查状态值是否合法
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusWaiting, TicketStatusResolved:
		return true
	}
	return false
}

// ValidTicketPriority 检查优先级值是否合法
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// ValidClassification 检查分类值是否合法
func ValidClassification(c TriageClassification) bool {
	switch c {
	case TriageKnownIssue, TriageNonIssue, TriageHowTo, TriageRealBug, TriageUnclear:
		return true
	}
	return false
}

// TriageResult 工单分诊结论，新工单创建时产生一次，之后只读
type TriageResult struct {
	Classification   TriageClassification `json:"classification"`
	Confidence       TriageConfidence     `json:"confidence"`
	MatchedKnowledge string               `json:"matched_knowledge,omitempty"`
	SuggestedReply   string               `json:"suggested_response"`
	SuggestedStatus  TicketStatus         `json:"suggested_status,omitempty"`
	SuggestedPrio    TicketPriority       `json:"suggested_priority,omitempty"`
	Escalate         bool                 `json:"escalate"`
}

// SupportTicket 支持工单实体
type SupportTicket struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID string `json:"tenant_id" gorm:"type:uuid;index;not null"`

	Subject     string         `json:"subject" gorm:"type:varchar(500);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category,omitempty" gorm:"type:varchar(100)"`
	Type        string         `json:"type,omitempty" gorm:"type:varchar(100)"`
	Priority    TicketPriority `json:"priority" gorm:"type:varchar(50);default:'medium'"`
	Status      TicketStatus   `json:"status" gorm:"type:varchar(50);default:'open'"`
	Mode        TicketMode     `json:"mode" gorm:"type:varchar(50);default:'autopilot'"`

	ReporterUID   string `json:"reporter_uid,omitempty" gorm:"type:varchar(128)"`
	ReporterName  string `json:"reporter_name,omitempty" gorm:"type:varchar(255)"`
	ReporterEmail string `json:"reporter_email,omitempty" gorm:"type:varchar(320)"`

	Diagnostics map[string]any `json:"diagnostics,omitempty" gorm:"type:jsonb;serializer:json"`
	Triage      *TriageResult  `json:"triage,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// MessageSender 工单消息发送方
type MessageSender string

const (
	SenderUser  MessageSender = "user"
	SenderAdmin MessageSender = "admin"
	SenderAI    MessageSender = "ai"
)

// TicketMessage 工单会话消息
type TicketMessage struct {
	ID         string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID   string        `json:"ticket_id" gorm:"type:uuid;index;not null"`
	Sender     MessageSender `json:"sender" gorm:"type:varchar(50);not null"`
	SenderName string        `json:"sender_name,omitempty" gorm:"type:varchar(255)"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (TicketMessage) TableName() string {
	return "ticket_messages"
}
