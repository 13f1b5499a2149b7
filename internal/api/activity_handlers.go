package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/service"
)

func recorder(app App) *service.ActivityRecorder {
	return &service.ActivityRecorder{
		Activities: app.Activities(),
		Categories: app.Categories(),
		Categorize: app.Categorizer(),
		Fallback:   app.Config().DefaultCategory,
		Logger:     app.Logger(),
	}
}

// PostLogText categorizes the submitted note through the language model and
// stores it.
func PostLogText(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.LogTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateLogTextRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		activity, err := recorder(app).LogProcessed(c.Request.Context(), user.Username, req.Text, internal.ActivityTypeText, "")
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to save activity")
			return
		}
		HandleCreated(c, app.Logger(), activity, nil)
	}
}

// PostActivity stores a raw note without model processing.
func PostActivity(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.ActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateActivityRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		activity, err := recorder(app).LogRaw(c.Request.Context(), user.Username, &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to save activity")
			return
		}
		HandleCreated(c, app.Logger(), activity, nil)
	}
}

// GetActivities lists the caller's activities newest first, optionally
// bounded by [start, end) timestamp query params.
func GetActivities(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		activities, err := service.ListActivitiesDesc(c.Request.Context(), app.Activities(), user.Username,
			c.Query("start"), c.Query("end"))
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch activities")
			return
		}
		HandleSuccess(c, app.Logger(), activities, map[string]any{"total": len(activities)})
	}
}
