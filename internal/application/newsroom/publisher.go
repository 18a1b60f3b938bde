package newsroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"localpress-ai-api/internal/application/newsroom/prompt"
	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	"localpress-ai-api/internal/domain/repository"
	wfmodel "localpress-ai-api/internal/workflow/model"
	apperrors "localpress-ai-api/pkg/errors"
	"localpress-ai-api/pkg/logger"
	"localpress-ai-api/pkg/metrics"
)

var publisherTracer = otel.Tracer("newsroom.publisher")

// GenerateInput 一次文章生成请求，已通过认证，归属单次调用独占
type GenerateInput struct {
	Tenant *entity.Tenant

	CategoryID    string
	SourceContent *source.Content
	UseWebSearch  bool
	ArticlePrompt string

	JournalistName string
	JournalistID   string

	TargetWordCount int
	WritingStyle    string

	GenerateSEO   bool
	GenerateImage bool
}

// GenerateResult 生成结果
type GenerateResult struct {
	Article          *entity.Article
	CreditsUsed      int
	CreditsRemaining int
	Model            string
}

// Publisher 文章生成流水线编排器
// 线性状态机：校验、取素材、额度预检、组提示词、生成、解析、
// slug 去重、配图、落库、异步扣费。落库前任何一步失败都让整个
// 请求失败，不留半成品。
type Publisher struct {
	categories repository.CategoryRepository
	articles   repository.ArticleRepository
	acquirer   SourceAcquirer
	generator  Generator
	credits    CreditMeter
	images     ImageResolver
	cfg        *config.Config
}

func NewPublisher(
	categories repository.CategoryRepository,
	articles repository.ArticleRepository,
	acquirer SourceAcquirer,
	generator Generator,
	credits CreditMeter,
	images ImageResolver,
	cfg *config.Config,
) *Publisher {
	return &Publisher{
		categories: categories,
		articles:   articles,
		acquirer:   acquirer,
		generator:  generator,
		credits:    credits,
		images:     images,
		cfg:        cfg,
	}
}

func (p *Publisher) Generate(ctx context.Context, in *GenerateInput) (*GenerateResult, error) {
	start := time.Now()
	ctx, span := publisherTracer.Start(ctx, "newsroom.Generate")
	defer span.End()

	if in == nil || in.Tenant == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "no tenant context")
	}
	tenant := in.Tenant
	ctx = logger.WithContext(ctx, logger.TenantIDKey, tenant.ID)

	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "categoryId is required")
	}
	manual := in.SourceContent != nil
	if !manual && !in.UseWebSearch {
		return nil, apperrors.New(apperrors.CodeInvalidParam,
			"either sourceContent or useWebSearch is required")
	}

	category, err := p.categories.GetByID(ctx, tenant.ID, in.CategoryID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load category")
	}
	if category == nil {
		return nil, apperrors.New(apperrors.CodeCategoryNotFound, "category not found")
	}

	// 人工素材是硬门槛，检索素材弱只告警不拦截
	var (
		src           *source.Content
		usedWebSearch bool
	)
	if manual {
		src = in.SourceContent
		if v := source.Validate(src); !v.Valid {
			return nil, apperrors.New(apperrors.CodeSourceInvalid, v.Reason)
		}
	} else {
		usedWebSearch = true
		query := buildSearchQuery(category.Name, in.ArticlePrompt, tenant.ServiceArea)
		src = p.acquirer.Acquire(ctx, query, tenant.ServiceArea)
		if v := source.Validate(src); !v.Valid {
			logger.Warn(ctx, "web search yielded weak source material",
				"reason", v.Reason, "word_count", v.WordCount)
		}
	}

	// 扣费按 article 动作一笔记账，分项单价放进 metadata 供计量侧核对
	cost := p.cfg.Credits.CostArticle
	breakdown := map[string]any{"article": p.cfg.Credits.CostArticle}
	if in.GenerateImage {
		cost += p.cfg.Credits.CostImage
		breakdown["image"] = p.cfg.Credits.CostImage
	}
	if in.GenerateSEO {
		cost += p.cfg.Credits.CostSEO
		breakdown["seo"] = p.cfg.Credits.CostSEO
	}

	decision, err := p.credits.Check(ctx, tenant.ID, entity.CreditActionArticle, cost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCreditServiceError, "credit check failed")
	}
	if !decision.Allowed {
		return nil, &InsufficientCreditsError{
			Required:  cost,
			Remaining: decision.CreditsRemaining,
			Message:   decision.Message,
		}
	}

	assessment := source.Assess(src)
	promptText := prompt.Compose(prompt.Context{
		TenantName:        tenant.Name,
		ServiceArea:       tenant.ServiceArea,
		EditorDirective:   tenant.EditorDirective,
		CategoryDirective: category.Directive,
		ArticlePrompt:     in.ArticlePrompt,
		CategoryName:      category.Name,
		JournalistName:    in.JournalistName,
		WritingStyle:      in.WritingStyle,
		TargetWordCount:   in.TargetWordCount,
		Source:            src,
		FromWebSearch:     usedWebSearch,
		Assessment:        assessment,
	})

	provider := strings.TrimSpace(p.cfg.Newsroom.DefaultProvider)
	if provider == "" {
		provider = p.cfg.LLM.DefaultProvider
	}
	modelName := "unknown"
	if pcfg, ok := p.cfg.LLM.Providers[provider]; ok && pcfg.Model != "" {
		modelName = pcfg.Model
	}

	genIn := &wfmodel.ArticleGenerateInput{
		Provider: provider,
		Prompt:   promptText,
	}
	temp := float32(p.cfg.Newsroom.Temperature)
	genIn.Temperature = &temp
	if p.cfg.Newsroom.MaxTokens > 0 {
		maxTokens := p.cfg.Newsroom.MaxTokens
		genIn.MaxTokens = &maxTokens
	}

	msg, err := p.generator.Invoke(ctx, genIn)
	if err != nil {
		metrics.ArticleGenerationTotal.WithLabelValues(tenant.ID, "failure").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, "article generation failed")
	}

	parsed := Parse(msg.Content, src)

	finalSlug, err := ResolveSlug(ctx, p.articles, tenant.ID, parsed.Slug, p.cfg.Newsroom.SlugMaxAttempts)
	if err != nil {
		metrics.ArticleGenerationTotal.WithLabelValues(tenant.ID, "failure").Inc()
		return nil, err
	}

	var imageURL, imageAttribution string
	if in.GenerateImage && p.images != nil {
		url, attribution, imgErr := p.images.ResolveImage(ctx, parsed.Title)
		if imgErr != nil {
			logger.Warn(ctx, "image resolution failed, publishing without image",
				"error", imgErr.Error())
		} else {
			imageURL, imageAttribution = url, attribution
		}
	}

	article := &entity.Article{
		TenantID:         tenant.ID,
		CategoryID:       category.ID,
		Title:            parsed.Title,
		Content:          parsed.Content,
		Excerpt:          parsed.Excerpt,
		Tags:             parsed.Tags,
		Slug:             finalSlug,
		JournalistName:   strings.TrimSpace(in.JournalistName),
		JournalistID:     strings.TrimSpace(in.JournalistID),
		ImageURL:         imageURL,
		ImageAttribution: imageAttribution,
		UsedWebSearch:    usedWebSearch,
		Model:            modelName,
		GenerationMs:     time.Since(start).Milliseconds(),
		Status:           entity.ArticleStatusPublished,
		Audit: &entity.GenerationAudit{
			EditorDirective:   strings.TrimSpace(tenant.EditorDirective) != "",
			CategoryDirective: strings.TrimSpace(category.Directive) != "",
			ArticlePrompt:     strings.TrimSpace(in.ArticlePrompt) != "",
			PromptMode:        promptModeName(assessment),
			SourceRichness:    string(assessment.Richness),
			SourceWordCount:   assessment.WordCount,
		},
	}
	if src != nil {
		article.SourceName = src.SourceName
		article.SourceURL = src.URL
	}

	if err := p.articles.Create(ctx, article); err != nil {
		metrics.ArticleGenerationTotal.WithLabelValues(tenant.ID, "failure").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist article")
	}
	ctx = logger.WithContext(ctx, logger.ArticleIDKey, article.ID)

	// 扣费在落库后异步执行，失败只记日志，不回滚已发布文章
	p.deductAsync(ctx, tenant.ID, article.ID, parsed.Title, cost, breakdown)

	elapsed := time.Since(start)
	metrics.ArticleGenerationTotal.WithLabelValues(tenant.ID, "success").Inc()
	metrics.ArticleGenerationDuration.WithLabelValues(tenant.ID).Observe(elapsed.Seconds())
	metrics.ArticleCreditsUsed.WithLabelValues(tenant.ID).Add(float64(cost))

	logger.Info(ctx, "article published",
		"slug", article.Slug,
		"mode", article.Audit.PromptMode,
		"richness", article.Audit.SourceRichness,
		"credits", cost,
		"elapsed_ms", elapsed.Milliseconds())

	return &GenerateResult{
		Article:          article,
		CreditsUsed:      cost,
		CreditsRemaining: decision.CreditsRemaining - cost,
		Model:            modelName,
	}, nil
}

func (p *Publisher) deductAsync(ctx context.Context, tenantID, articleID, title string, cost int, breakdown map[string]any) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		err := p.credits.Deduct(dctx, &entity.CreditDeduction{
			TenantID:    tenantID,
			Action:      entity.CreditActionArticle,
			Quantity:    cost,
			Description: fmt.Sprintf("AI article generation: %s", title),
			ArticleID:   articleID,
			Metadata:    breakdown,
		})
		if err != nil {
			metrics.CreditDeductionTotal.WithLabelValues("failure").Inc()
			logger.Error(dctx, "credit deduction failed after publish", err,
				"credits", cost)
			return
		}
		metrics.CreditDeductionTotal.WithLabelValues("success").Inc()
	}()
}

func promptModeName(assessment source.Assessment) string {
	if assessment.Richness == source.RichnessLimited {
		return "local_interest"
	}
	return "source_grounded"
}

func buildSearchQuery(categoryName, articlePrompt, serviceArea string) string {
	if q := strings.TrimSpace(articlePrompt); q != "" {
		return q
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s news", serviceArea, categoryName))
}
