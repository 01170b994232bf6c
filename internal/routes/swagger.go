package routes

import (
	"collabhub_backend/docs"
	"collabhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterSwagger публикует документацию API на /swagger/index.html
func RegisterSwagger(ginRouter *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("Swagger UI registered", "path", "/swagger/index.html")
}
