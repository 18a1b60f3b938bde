package dto

import (
	"localpress-ai-api/internal/domain/entity"
)

// CreateTicketRequest 建单请求
type CreateTicketRequest struct {
	Subject       string         `json:"subject" binding:"required"`
	Description   string         `json:"description" binding:"required"`
	Category      string         `json:"category,omitempty"`
	Priority      string         `json:"priority,omitempty"`
	Type          string         `json:"type,omitempty"`
	ReporterUID   string         `json:"reporterUid,omitempty"`
	ReporterName  string         `json:"reporterName,omitempty"`
	ReporterEmail string         `json:"reporterEmail,omitempty"`
	Diagnostics   map[string]any `json:"diagnostics,omitempty"`
}

// CreateTicketResponse 建单响应
type CreateTicketResponse struct {
	Success    bool                 `json:"success"`
	TicketID   string               `json:"ticketId"`
	AIResponse string               `json:"aiResponse,omitempty"`
	Triage     *entity.TriageResult `json:"triage,omitempty"`
}

// TicketActionRequest 工单操作请求，action 决定其余字段的含义
type TicketActionRequest struct {
	Action string `json:"action" binding:"required"`

	// action = reply
	Content    string `json:"content,omitempty"`
	Sender     string `json:"sender,omitempty"`
	SenderName string `json:"senderName,omitempty"`

	// action = status
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// TicketActionResponse 工单操作响应
type TicketActionResponse struct {
	Success    bool   `json:"success"`
	AIResponse string `json:"aiResponse,omitempty"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
}
