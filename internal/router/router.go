package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sell_that_sheet/internal/controller"
	"sell_that_sheet/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	schemaCtrl *controller.SchemaController,
	draftCtrl *controller.DraftController,
	photosetCtrl *controller.PhotosetController,
	setCtrl *controller.AuctionSetController,
	catalogCtrl *controller.CatalogController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 开放路由（无需登录）
	open := r.Group("/api")
	{
		auth := open.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", authCtrl.Login)
			auth.POST("/register", authCtrl.Register)
		}
	}

	// 3. 业务路由组（JWT 保护）
	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// 用户查询（归属人下拉）
		api.GET("/users", authCtrl.ListGroupUsers)

		// 类目表单 schema
		categories := api.Group("/categories")
		{
			// GET /api/categories/match?name=xxx
			categories.GET("/match", schemaCtrl.MatchCategories)
			categories.GET("/:category_id", schemaCtrl.GetCategory)
			// GET /api/categories/:category_id/offer-schema
			categories.GET("/:category_id/offer-schema", schemaCtrl.GetOfferSchema)
		}
		api.POST("/offer-schema/validate", schemaCtrl.ValidateValues)

		// 会话草稿与装配
		drafts := api.Group("/drafts")
		{
			drafts.GET("", draftCtrl.ListDrafts)
			drafts.POST("", draftCtrl.AddDraft)
			drafts.PUT("/:local_id", draftCtrl.UpdateDraft)
			drafts.DELETE("/:local_id", draftCtrl.RemoveDraft)
			// POST /api/drafts/assemble
			drafts.POST("/assemble", draftCtrl.Assemble)
		}

		// 图集
		photosets := api.Group("/photosets")
		{
			photosets.POST("", photosetCtrl.CreatePhotoset)
			photosets.GET("/:set_id", photosetCtrl.GetPhotoset)
			photosets.GET("/:set_id/thumbnail", photosetCtrl.GetThumbnail)
		}

		// 拍卖集
		sets := api.Group("/auction-sets")
		{
			sets.GET("", setCtrl.ListSets)
			sets.GET("/:set_id", setCtrl.GetSetDetail)
			sets.POST("/:set_id/push", setCtrl.RequestPush)
			sets.POST("/:set_id/share-token", setCtrl.RotateShareToken)
		}

		// 自定义参数目录
		params := api.Group("/category-parameters")
		{
			params.GET("", catalogCtrl.ListParameters)
			params.POST("", catalogCtrl.CreateParameter)
			params.PUT("/:param_id", catalogCtrl.UpdateParameter)
			params.DELETE("/:param_id", catalogCtrl.DeleteParameter)
		}

		// 描述模板
		templates := api.Group("/description-templates")
		{
			templates.GET("", catalogCtrl.ListTemplates)
			templates.POST("", catalogCtrl.CreateTemplate)
			templates.DELETE("/:template_id", catalogCtrl.DeleteTemplate)
		}
	}
}
