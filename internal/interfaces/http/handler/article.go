// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"localpress-ai-api/internal/application/newsroom"
	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/interfaces/http/dto"
	"localpress-ai-api/internal/interfaces/http/middleware"
	apperrors "localpress-ai-api/pkg/errors"
	"localpress-ai-api/pkg/logger"
)

// ArticleHandler 文章生成处理器
type ArticleHandler struct {
	publisher *newsroom.Publisher
}

func NewArticleHandler(publisher *newsroom.Publisher) *ArticleHandler {
	return &ArticleHandler{publisher: publisher}
}

// Generate 处理 POST /v1/articles/generate
// 无论成败都回报端到端耗时。
func (h *ArticleHandler) Generate(c *gin.Context) {
	start := time.Now()

	tenant := middleware.TenantFromContext(c)
	if tenant == nil {
		writeGenerateError(c, http.StatusUnauthorized, "no tenant context", 0, 0, start)
		return
	}

	var req dto.GenerateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeGenerateError(c, http.StatusBadRequest, "invalid request body: "+err.Error(), 0, 0, start)
		return
	}

	in := &newsroom.GenerateInput{
		Tenant:          tenant,
		CategoryID:      req.CategoryID,
		UseWebSearch:    req.UseWebSearch,
		ArticlePrompt:   req.ArticleSpecificPrompt,
		JournalistName:  req.JournalistName,
		JournalistID:    req.JournalistID,
		TargetWordCount: req.TargetWordCount,
		WritingStyle:    req.WritingStyle,
		GenerateSEO:     req.GenerateSEO,
		GenerateImage:   req.GenerateImage,
	}
	if req.SourceContent != nil {
		in.SourceContent = &source.Content{
			Title:       req.SourceContent.Title,
			Description: req.SourceContent.Description,
			FullContent: req.SourceContent.FullContent,
			SourceName:  req.SourceContent.SourceName,
			URL:         req.SourceContent.URL,
		}
	}

	result, err := h.publisher.Generate(c.Request.Context(), in)
	if err != nil {
		h.writeFailure(c, err, start)
		return
	}

	article := result.Article
	c.JSON(http.StatusOK, dto.GenerateArticleResponse{
		Success: true,
		Article: &dto.GeneratedArticle{
			Title:            article.Title,
			Content:          article.Content,
			Excerpt:          article.Excerpt,
			Tags:             article.Tags,
			Slug:             article.Slug,
			ImageURL:         article.ImageURL,
			ImageAttribution: article.ImageAttribution,
		},
		CreditsUsed:      result.CreditsUsed,
		CreditsRemaining: result.CreditsRemaining,
		GenerationTimeMs: time.Since(start).Milliseconds(),
		Model:            result.Model,
	})
}

func (h *ArticleHandler) writeFailure(c *gin.Context, err error, start time.Time) {
	var insufficient *newsroom.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		elapsed := time.Since(start).Milliseconds()
		c.JSON(http.StatusPaymentRequired, dto.GenerateArticleError{
			Success:          false,
			Error:            insufficient.Error(),
			CreditsRequired:  insufficient.Required,
			CreditsRemaining: insufficient.Remaining,
			GenerationTimeMs: elapsed,
			Model:            "unknown",
		})
		return
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "article generation request failed", err,
			"path", c.Request.URL.Path)
	}

	msg := appErr.Message
	if appErr.Detail != "" {
		msg = msg + ": " + appErr.Detail
	}
	writeGenerateError(c, appErr.HTTPStatus, msg, 0, 0, start)
}

func writeGenerateError(c *gin.Context, status int, msg string, used, remaining int, start time.Time) {
	c.JSON(status, dto.GenerateArticleError{
		Success:          false,
		Error:            msg,
		CreditsUsed:      used,
		CreditsRemaining: remaining,
		GenerationTimeMs: time.Since(start).Milliseconds(),
		Model:            "unknown",
	})
}
