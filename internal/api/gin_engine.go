package api

import (
	"orderhub/pkg/logger"
	"orderhub/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine(l *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.CorrelationMiddleware(), metrics.GinMiddleware(), l.GinBodyLogger(), gin.Recovery())
	return engine
}
