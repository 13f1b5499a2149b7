package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal/auth"
)

// NewRouter wires every route. Shared between main and the handler tests.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware())

	r.GET("/", GetRoot(app))
	r.GET("/health", GetHealth(app))
	r.POST("/auth/signup", PostSignup(app))
	r.POST("/auth/login", PostLogin(app))

	authed := r.Group("/", auth.Middleware(app.Tokens(), app.Users(), app.Logger()))
	authed.GET("/users/me", GetMe(app))
	authed.PUT("/users/me", PutMe(app))

	authed.POST("/log-text", PostLogText(app))
	authed.POST("/activities", PostActivity(app))
	authed.GET("/activities", GetActivities(app))

	authed.GET("/categories", GetCategories(app))
	authed.GET("/visualizations", GetVisualizations(app))

	authed.POST("/analyze", PostAnalyze(app))
	authed.POST("/query-logs", PostQueryLogs(app))

	authed.POST("/conversations/start", PostStartConversation(app))
	authed.POST("/conversations/end", PostEndConversation(app))
	authed.GET("/conversation-history", GetConversationHistory(app))

	authed.POST("/backup", PostBackup(app))

	return r
}
