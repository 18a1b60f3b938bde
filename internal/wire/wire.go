//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"localpress-ai-api/internal/application/newsroom"
	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/application/support"
	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/repository"
	"localpress-ai-api/internal/infrastructure/credits"
	"localpress-ai-api/internal/infrastructure/images"
	"localpress-ai-api/internal/infrastructure/llm"
	"localpress-ai-api/internal/infrastructure/persistence/postgres"
	"localpress-ai-api/internal/infrastructure/persistence/redis"
	"localpress-ai-api/internal/interfaces/http/handler"
	"localpress-ai-api/internal/interfaces/http/router"
	"localpress-ai-api/internal/workflow/chain"
	workflowport "localpress-ai-api/internal/workflow/port"
)

// DataSet 数据层提供者集合
var DataSet = wire.NewSet(
	ProvidePostgresClient,
	ProvideRedisClient,
	redis.NewCache,
	postgres.NewTxManager,
	postgres.NewTenantRepository,
	postgres.NewCategoryRepository,
	postgres.NewArticleRepository,
	postgres.NewTicketRepository,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.TenantRepository), new(*postgres.TenantRepository)),
	wire.Bind(new(repository.CategoryRepository), new(*postgres.CategoryRepository)),
	wire.Bind(new(repository.ArticleRepository), new(*postgres.ArticleRepository)),
	wire.Bind(new(repository.TicketRepository), new(*postgres.TicketRepository)),
)

// PipelineSet 文章生成流水线提供者集合
var PipelineSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewArticleChain,
	wire.Bind(new(newsroom.Generator), new(*chain.ArticleChain)),
	ProvideSearchProvider,
	ProvideFeedProvider,
	ProvideAcquirer,
	wire.Bind(new(newsroom.SourceAcquirer), new(*source.Acquirer)),
	credits.NewClient,
	wire.Bind(new(newsroom.CreditMeter), new(*credits.Client)),
	ProvideImageResolver,
	wire.Bind(new(newsroom.ImageResolver), new(*images.Resolver)),
	newsroom.NewPublisher,
)

// SupportSet 工单子系统提供者集合
var SupportSet = wire.NewSet(
	chain.NewTriageChain,
	wire.Bind(new(support.TriageInvoker), new(*chain.TriageChain)),
	chain.NewAutopilotChain,
	wire.Bind(new(support.AutopilotInvoker), new(*chain.AutopilotChain)),
	support.NewTriageEngine,
	support.NewAutopilot,
	support.NewService,
)

// HTTPSet 接口层提供者集合
var HTTPSet = wire.NewSet(
	handler.NewArticleHandler,
	handler.NewTicketHandler,
	handler.NewHealthHandler,
	router.New,
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		DataSet,
		PipelineSet,
		SupportSet,
		HTTPSet,
	)
	return nil, nil, nil
}
