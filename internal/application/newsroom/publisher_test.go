package newsroom

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	wfmodel "localpress-ai-api/internal/workflow/model"
	apperrors "localpress-ai-api/pkg/errors"
)

type fakeCategories struct {
	category *entity.Category
	err      error
}

func (f *fakeCategories) GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error) {
	return f.category, f.err
}

type fakeArticles struct {
	created   *entity.Article
	createErr error
	taken     map[string]bool
}

func (f *fakeArticles) Create(ctx context.Context, article *entity.Article) error {
	if f.createErr != nil {
		return f.createErr
	}
	article.ID = "article-1"
	f.created = article
	return nil
}

func (f *fakeArticles) SlugExists(ctx context.Context, tenantID, slug string) (bool, error) {
	return f.taken[slug], nil
}

type fakeAcquirer struct {
	content *source.Content
	calls   int
}

func (f *fakeAcquirer) Acquire(ctx context.Context, query, focusArea string) *source.Content {
	f.calls++
	return f.content
}

type fakeGenerator struct {
	content    string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Invoke(ctx context.Context, in *wfmodel.ArticleGenerateInput) (*schema.Message, error) {
	f.calls++
	f.lastPrompt = in.Prompt
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.content}, nil
}

type fakeCredits struct {
	decision   *entity.CreditDecision
	checkErr   error
	deductErr  error
	checkCalls int
	deductions chan *entity.CreditDeduction
}

func newFakeCredits(allowed bool, remaining int) *fakeCredits {
	return &fakeCredits{
		decision:   &entity.CreditDecision{Allowed: allowed, CreditsRemaining: remaining},
		deductions: make(chan *entity.CreditDeduction, 1),
	}
}

func (f *fakeCredits) Check(ctx context.Context, tenantID, action string, quantity int) (*entity.CreditDecision, error) {
	f.checkCalls++
	return f.decision, f.checkErr
}

func (f *fakeCredits) Deduct(ctx context.Context, d *entity.CreditDeduction) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.deductions <- d
	return nil
}

type fakeImages struct {
	url         string
	attribution string
	err         error
	calls       int
}

func (f *fakeImages) ResolveImage(ctx context.Context, query string) (string, string, error) {
	f.calls++
	return f.url, f.attribution, f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Credits.CostArticle = 3
	cfg.Credits.CostImage = 1
	cfg.Credits.CostSEO = 1
	cfg.Newsroom.Temperature = 0.1
	cfg.Newsroom.SlugMaxAttempts = 5
	cfg.LLM.DefaultProvider = "openai"
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"openai": {Model: "gpt-4o-mini"},
	}
	return cfg
}

func testTenant() *entity.Tenant {
	return &entity.Tenant{
		ID:          "t1",
		Name:        "Bergen Local News",
		ServiceArea: "Bergen County, New Jersey",
		Status:      entity.TenantStatusActive,
	}
}

const generatedOutput = `TITLE: Council Approves Downtown Plan
CONTENT:
The council approved the plan Tuesday night after a lengthy public hearing.
TAGS: council, downtown`

type publisherFixture struct {
	categories *fakeCategories
	articles   *fakeArticles
	acquirer   *fakeAcquirer
	generator  *fakeGenerator
	credits    *fakeCredits
	images     *fakeImages
	publisher  *Publisher
}

func newPublisherFixture() *publisherFixture {
	f := &publisherFixture{
		categories: &fakeCategories{category: &entity.Category{ID: "c1", TenantID: "t1", Name: "Business"}},
		articles:   &fakeArticles{},
		acquirer:   &fakeAcquirer{},
		generator:  &fakeGenerator{content: generatedOutput},
		credits:    newFakeCredits(true, 10),
		images:     &fakeImages{url: "https://img.example/1.jpg", attribution: "Photo by A. Photographer"},
	}
	f.publisher = NewPublisher(f.categories, f.articles, f.acquirer, f.generator, f.credits, f.images, testConfig())
	return f
}

func manualSource() *source.Content {
	return &source.Content{
		Title:       "Council Approves Downtown Plan",
		FullContent: strings.TrimSpace(strings.Repeat("word ", 400)),
		SourceName:  "Daily Gazette",
	}
}

func waitForDeduction(t *testing.T, f *fakeCredits) *entity.CreditDeduction {
	t.Helper()
	select {
	case d := <-f.deductions:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("credit deduction was never issued")
		return nil
	}
}

func TestGenerateManualSourceSuccess(t *testing.T) {
	f := newPublisherFixture()

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
	})

	require.NoError(t, err)
	require.NotNil(t, res.Article)
	assert.Equal(t, "Council Approves Downtown Plan", res.Article.Title)
	assert.Equal(t, "council-approves-downtown-plan", res.Article.Slug)
	assert.Equal(t, entity.ArticleStatusPublished, res.Article.Status)
	assert.False(t, res.Article.UsedWebSearch)
	assert.Equal(t, "Daily Gazette", res.Article.SourceName)
	assert.Equal(t, "source_grounded", res.Article.Audit.PromptMode)
	assert.Equal(t, 3, res.CreditsUsed)
	assert.Equal(t, 7, res.CreditsRemaining)
	assert.Equal(t, "gpt-4o-mini", res.Model)

	require.NotNil(t, f.articles.created)
	assert.Contains(t, f.generator.lastPrompt, "SOURCE FIDELITY RULES")
	assert.Equal(t, 0, f.acquirer.calls, "manual source must not trigger web search")
	assert.Equal(t, 0, f.images.calls, "image was not requested")

	d := waitForDeduction(t, f.credits)
	assert.Equal(t, "t1", d.TenantID)
	assert.Equal(t, entity.CreditActionArticle, d.Action)
	assert.Equal(t, 3, d.Quantity)
	assert.Equal(t, "article-1", d.ArticleID)
	assert.Equal(t, map[string]any{"article": 3}, d.Metadata, "no add-on lines without add-ons")
}

func TestGenerateRequiresCategory(t *testing.T) {
	f := newPublisherFixture()

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		SourceContent: manualSource(),
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
	assert.Equal(t, 0, f.credits.checkCalls)
}

func TestGenerateRequiresSourceOrWebSearch(t *testing.T) {
	f := newPublisherFixture()

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:     testTenant(),
		CategoryID: "c1",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
	assert.Equal(t, 0, f.generator.calls)
}

func TestGenerateCategoryNotFound(t *testing.T) {
	f := newPublisherFixture()
	f.categories.category = nil

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "missing",
		SourceContent: manualSource(),
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCategoryNotFound, apperrors.AsAppError(err).Code)
}

func TestGenerateRejectsWeakManualSource(t *testing.T) {
	f := newPublisherFixture()

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: &source.Content{FullContent: "too short"},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSourceInvalid, apperrors.AsAppError(err).Code)
	assert.Equal(t, 0, f.generator.calls)
	assert.Equal(t, 0, f.credits.checkCalls, "credits must not be checked for invalid input")
}

func TestGenerateInsufficientCredits(t *testing.T) {
	f := newPublisherFixture()
	f.credits.decision = &entity.CreditDecision{Allowed: false, CreditsRemaining: 1}

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
	})

	require.Error(t, err)
	var ice *InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, 3, ice.Required)
	assert.Equal(t, 1, ice.Remaining)
	assert.Equal(t, 0, f.generator.calls, "generation must not run without credits")
	assert.Nil(t, f.articles.created)
}

func TestGenerateFailureDoesNotPersist(t *testing.T) {
	f := newPublisherFixture()
	f.generator.err = errors.New("model timeout")

	_, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeGenerationFailed, apperrors.AsAppError(err).Code)
	assert.Nil(t, f.articles.created)

	select {
	case <-f.credits.deductions:
		t.Fatal("no deduction may happen for a failed generation")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGenerateWebSearchWeakSourceProceeds(t *testing.T) {
	f := newPublisherFixture()
	f.acquirer.content = &source.Content{
		Title:       "Community Update",
		FullContent: "A short note.",
		SourceName:  "Local Reports",
	}

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:       testTenant(),
		CategoryID:   "c1",
		UseWebSearch: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.acquirer.calls)
	assert.True(t, res.Article.UsedWebSearch)
	assert.Equal(t, "local_interest", res.Article.Audit.PromptMode)
	assert.Contains(t, f.generator.lastPrompt, "No current source material")
	waitForDeduction(t, f.credits)
}

func TestGenerateWithImageAndSEO(t *testing.T) {
	f := newPublisherFixture()

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
		GenerateImage: true,
		GenerateSEO:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, res.CreditsUsed)
	assert.Equal(t, 1, f.images.calls)
	assert.Equal(t, "https://img.example/1.jpg", res.Article.ImageURL)
	assert.Equal(t, "Photo by A. Photographer", res.Article.ImageAttribution)

	d := waitForDeduction(t, f.credits)
	assert.Equal(t, 5, d.Quantity)
	assert.Equal(t, map[string]any{"article": 3, "image": 1, "seo": 1}, d.Metadata)
}

func TestGenerateImageFailureIsNonFatal(t *testing.T) {
	f := newPublisherFixture()
	f.images.err = errors.New("stock api down")

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
		GenerateImage: true,
	})

	require.NoError(t, err)
	assert.Empty(t, res.Article.ImageURL)
	assert.Equal(t, 4, res.CreditsUsed)
	waitForDeduction(t, f.credits)
}

func TestGenerateSlugCollisionResolved(t *testing.T) {
	f := newPublisherFixture()
	f.articles.taken = map[string]bool{"council-approves-downtown-plan": true}

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
	})

	require.NoError(t, err)
	assert.NotEqual(t, "council-approves-downtown-plan", res.Article.Slug)
	assert.True(t, strings.HasPrefix(res.Article.Slug, "council-approves-downtown-plan-"))
	waitForDeduction(t, f.credits)
}

func TestGenerateDeductionFailureDoesNotUnpublish(t *testing.T) {
	f := newPublisherFixture()
	f.credits.deductErr = errors.New("billing down")

	res, err := f.publisher.Generate(context.Background(), &GenerateInput{
		Tenant:        testTenant(),
		CategoryID:    "c1",
		SourceContent: manualSource(),
	})

	require.NoError(t, err)
	assert.NotNil(t, res.Article)
	assert.NotNil(t, f.articles.created)
}
