package router

import (
	"goblog/internal/application"
	"goblog/internal/container"
	pginfra "goblog/internal/infrastructure/postgres"
	handlers "goblog/internal/interface/http"
	"goblog/internal/router/modules"
	"goblog/pkg/helpers"
	"goblog/pkg/mailer"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	blogRepo := pginfra.NewBlogRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)

	var sender mailer.Sender
	if mg := container.GetMailgun(); mg != nil {
		sender = mg
	}
	accountSvc := application.NewAccountService(
		userRepo,
		container.GetTokens(),
		sender,
		container.GetRabbitPub(),
		container.GetRedis(),
		logger,
		cfg,
	)
	blogSvc := application.NewBlogService(blogRepo, categoryRepo, container.GetES(), cfg.ESBlogsIndex, logger, cfg)
	commentSvc := application.NewCommentService(commentRepo, blogRepo, logger, cfg)
	categorySvc := application.NewCategoryService(categoryRepo, logger, cfg)

	cookies := helpers.NewCookieManager(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure)

	accountHandler := handlers.NewAccountHandler(accountSvc, logger, cookies)
	blogHandler := handlers.NewBlogHandler(blogSvc, commentSvc, accountSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, accountSvc, logger)
	categoryHandler := handlers.NewCategoryHandler(categorySvc, logger)
	uploadHandler := handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewAccountModule(accountHandler, container.GetTokens(), cfg.CookieName))
	r.Add(modules.NewBlogModule(blogHandler, categoryHandler, commentHandler, container.GetTokens(), cfg.CookieName))
	r.Add(modules.NewManageModule(accountHandler, blogHandler, commentHandler, categoryHandler, uploadHandler, container.GetTokens(), cfg.CookieName))
}
