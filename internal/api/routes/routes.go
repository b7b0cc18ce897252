package routes

import (
	"board-inventory-api-server/config"
	"board-inventory-api-server/internal/api/handlers"
	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers onto the route tree. Every business
// route sits behind Authenticate; write routes additionally require the
// matching permission.
func SetupRouter(store inventory.Store, service *inventory.Service, wsHub *socket.Hub, cfg config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{Store: store}
	categoryHandler := &handlers.CategoryHandler{Store: store, Service: service}
	boardHandler := &handlers.BoardHandler{Store: store, Service: service}
	inwardHandler := &handlers.InwardHandler{Service: service}
	requestHandler := &handlers.RequestHandler{Service: service}
	outwardHandler := &handlers.OutwardHandler{Service: service}
	reportHandler := &handlers.ReportHandler{Service: service}
	exportHandler := &handlers.ExportHandler{Service: service}
	userHandler := &handlers.UserHandler{Store: store}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(store))
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/change-password", authHandler.ChangePassword)
			protected.GET("/permissions/available", middleware.RequireAdmin(), userHandler.AvailablePermissions)
			protected.GET("/users/me/permissions", authHandler.MyPermissions)

			protected.GET("/dashboard", middleware.RequirePermission("view_dashboard"), reportHandler.Dashboard)

			categories := protected.Group("/categories")
			{
				categories.GET("/", middleware.RequirePermission("view_categories"), categoryHandler.GetAllCategories)
				categories.GET("/:id", middleware.RequirePermission("view_categories"), categoryHandler.GetCategoryByID)
				categories.POST("/", middleware.RequirePermission("create_categories"), categoryHandler.CreateCategory)
				categories.PUT("/:id", middleware.RequirePermission("edit_categories"), categoryHandler.UpdateCategory)
				categories.DELETE("/:id", middleware.RequirePermission("edit_categories"), categoryHandler.DeleteCategory)
			}

			boards := protected.Group("/boards")
			{
				boards.GET("/", middleware.RequirePermission("view_boards"), boardHandler.SearchBoards)
				boards.GET("/:id", middleware.RequirePermission("view_boards"), boardHandler.GetBoardByID)
				boards.GET("/available/:categoryId", middleware.RequirePermission("view_boards"), boardHandler.GetAvailableBoards)
				boards.PUT("/:id", middleware.RequirePermission("edit_boards"), boardHandler.UpdateBoard)
				boards.DELETE("/:id", middleware.RequirePermission("edit_boards"), boardHandler.DeleteBoard)
				boards.POST("/:id/issue", middleware.RequirePermission(inventory.PermCreateOutward), outwardHandler.DirectIssue)
			}

			inward := protected.Group("/inward")
			inward.Use(middleware.RequirePermission(inventory.PermCreateInward))
			{
				inward.POST("/board", inwardHandler.InwardBoard)
				inward.POST("/range", inwardHandler.InwardRange)
				inward.POST("/repair", inwardHandler.InwardRepair)
				inward.POST("/validate-range", inwardHandler.ValidateRange)
				inward.GET("/next-serial/:categoryId", inwardHandler.NextSerial)
			}

			requests := protected.Group("/issue-requests")
			{
				requests.GET("/", middleware.RequirePermission("view_issue_requests"), requestHandler.GetIssueRequests)
				requests.POST("/", middleware.RequirePermission(inventory.PermCreateIssueRequests), requestHandler.CreateIssueRequest)
				requests.POST("/:id/approve", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.ApproveIssueRequest)
				requests.POST("/:id/reject", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.RejectIssueRequest)
				requests.DELETE("/:id", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.DeleteIssueRequest)
			}

			bulkRequests := protected.Group("/bulk-issue-requests")
			{
				bulkRequests.GET("/", middleware.RequirePermission("view_issue_requests"), requestHandler.GetBulkRequests)
				bulkRequests.POST("/", middleware.RequirePermission(inventory.PermCreateIssueRequests), requestHandler.CreateBulkRequest)
				bulkRequests.POST("/preview", middleware.RequirePermission(inventory.PermCreateIssueRequests), requestHandler.PreviewAutoSelect)
				bulkRequests.POST("/:id/approve", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.ApproveBulkRequest)
				bulkRequests.POST("/:id/reject", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.RejectBulkRequest)
				bulkRequests.DELETE("/:id", middleware.RequirePermission(inventory.PermApproveIssueRequests), requestHandler.DeleteBulkRequest)
			}

			outward := protected.Group("/outward")
			outward.Use(middleware.RequirePermission(inventory.PermCreateOutward))
			{
				outward.POST("/issue", outwardHandler.IssueFromRequest)
			}

			reports := protected.Group("/reports")
			reports.Use(middleware.RequirePermission("view_reports"))
			{
				reports.GET("/low-stock", reportHandler.LowStock)
				reports.GET("/under-repair", reportHandler.UnderRepair)
				reports.GET("/serial-history/:serialNumber", reportHandler.SerialHistory)
				reports.GET("/serial-numbers/:categoryId", reportHandler.SerialNumbers)
				reports.GET("/category/:categoryId", reportHandler.CategoryExport)
			}

			exports := protected.Group("/exports")
			exports.Use(middleware.RequirePermission("export_reports"))
			{
				exports.GET("/low-stock", exportHandler.ExportLowStock)
				exports.GET("/under-repair", exportHandler.ExportUnderRepair)
				exports.GET("/serial-numbers/:categoryId", exportHandler.ExportSerialNumbers)
				exports.GET("/category/:categoryId", exportHandler.ExportCategory)
				exports.GET("/boards", exportHandler.ExportBoards)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				users := admin.Group("/users")
				{
					users.POST("/", userHandler.CreateUser)
					users.GET("/", userHandler.GetAllUsers)
					users.GET("/:id", userHandler.GetUserByID)
					users.PUT("/:id", userHandler.UpdateUser)
					users.POST("/:id/reset-password", userHandler.ResetPassword)
					users.DELETE("/:id", userHandler.DeleteUser)
				}
			}
		}
	}

	return router
}
