package router

import (
	"github.com/aayush-paliwal/finance-sass/internal/config"
	"github.com/aayush-paliwal/finance-sass/internal/handler"
	"github.com/aayush-paliwal/finance-sass/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the gin engine and the full API route table.
//
// Check order is pinned: authentication runs as group middleware, so 401
// always precedes the handlers' own 400 missing-id check. The bare-path
// PATCH/DELETE variants route into the same by-id handlers; gin never
// matches a parameterized route with an empty :id, so those variants are
// what keeps the 400 missing-id branch reachable.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	accountHandler := handler.NewAccountHandler(db)
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.GET("/accounts/:id", accountHandler.GetAccount)
	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.POST("/accounts/bulk-delete", accountHandler.BulkDeleteAccounts)
	protected.PATCH("/accounts/:id", accountHandler.UpdateAccount)
	protected.PATCH("/accounts", accountHandler.UpdateAccount)
	protected.DELETE("/accounts/:id", accountHandler.DeleteAccount)
	protected.DELETE("/accounts", accountHandler.DeleteAccount)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.GET("/categories/:id", categoryHandler.GetCategory)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.POST("/categories/bulk-delete", categoryHandler.BulkDeleteCategories)
	protected.PATCH("/categories/:id", categoryHandler.UpdateCategory)
	protected.PATCH("/categories", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	protected.DELETE("/categories", categoryHandler.DeleteCategory)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.GET("/transactions/:id", transactionHandler.GetTransaction)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.POST("/transactions/bulk-delete", transactionHandler.BulkDeleteTransactions)
	protected.PATCH("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.PATCH("/transactions", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	protected.DELETE("/transactions", transactionHandler.DeleteTransaction)

	summaryHandler := handler.NewSummaryHandler(db)
	protected.GET("/summary", summaryHandler.GetSummary)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
