package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Guard bundles what route groups need to authenticate and authorize.
type Guard struct {
	Secret string
	Logger *zap.Logger
	RBAC   RBACService
}

// Authenticated is the chain every protected group starts with.
func (g Guard) Authenticated() []gin.HandlerFunc {
	logger := g.Logger
	if logger == nil {
		logger = zap.L()
	}
	return []gin.HandlerFunc{
		RequestID(),
		AuthMiddleware(g.Secret),
		ExtractUserID(),
		ContextLogger(logger),
	}
}
