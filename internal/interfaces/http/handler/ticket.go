package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"localpress-ai-api/internal/application/support"
	"localpress-ai-api/internal/domain/entity"
	"localpress-ai-api/internal/interfaces/http/dto"
	"localpress-ai-api/internal/interfaces/http/middleware"
	apperrors "localpress-ai-api/pkg/errors"
	"localpress-ai-api/pkg/logger"
)

// TicketHandler 支持工单处理器
type TicketHandler struct {
	service *support.Service
}

func NewTicketHandler(service *support.Service) *TicketHandler {
	return &TicketHandler{service: service}
}

// Create 处理 POST /v1/support/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	tenant := middleware.TenantFromContext(c)
	if tenant == nil {
		dto.Unauthorized(c, "no tenant context")
		return
	}

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	out, err := h.service.CreateTicket(c.Request.Context(), tenant, &support.CreateTicketInput{
		Subject:       req.Subject,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		Type:          req.Type,
		ReporterUID:   req.ReporterUID,
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		Diagnostics:   req.Diagnostics,
	})
	if err != nil {
		writeTicketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTicketResponse{
		Success:    true,
		TicketID:   out.Ticket.ID,
		AIResponse: out.AIResponse,
		Triage:     out.Triage,
	})
}

// Patch 处理 PATCH /v1/support/tickets/:id，action 分派
func (h *TicketHandler) Patch(c *gin.Context) {
	tenant := middleware.TenantFromContext(c)
	if tenant == nil {
		dto.Unauthorized(c, "no tenant context")
		return
	}

	var req dto.TicketActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ticketID := c.Param("id")

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "reply":
		h.reply(c, tenant, ticketID, &req)
	case "status":
		h.setStatus(c, tenant, ticketID, &req)
	default:
		dto.BadRequest(c, "unsupported action: "+req.Action)
	}
}

func (h *TicketHandler) setStatus(c *gin.Context, tenant *entity.Tenant, ticketID string, req *dto.TicketActionRequest) {
	ticket, err := h.service.SetStatus(c.Request.Context(), tenant, ticketID, req.Status, req.Priority)
	if err != nil {
		writeTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TicketActionResponse{
		Success:  true,
		Status:   string(ticket.Status),
		Priority: string(ticket.Priority),
	})
}

func (h *TicketHandler) reply(c *gin.Context, tenant *entity.Tenant, ticketID string, req *dto.TicketActionRequest) {
	out, err := h.service.Reply(c.Request.Context(), tenant, ticketID, &support.ReplyInput{
		Sender:     entity.MessageSender(strings.ToLower(strings.TrimSpace(req.Sender))),
		SenderName: req.SenderName,
		Content:    req.Content,
	})
	if err != nil {
		writeTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TicketActionResponse{
		Success:    true,
		AIResponse: out.AIResponse,
		Status:     string(out.Ticket.Status),
		Priority:   string(out.Ticket.Priority),
	})
}

func writeTicketError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "ticket request failed", err,
			"path", c.Request.URL.Path)
	}
	dto.Error(c, appErr.HTTPStatus, appErr.Message)
}
