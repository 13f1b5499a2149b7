package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
)

func GetRoot(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":         "VibeTrack API",
			"version":      "1.0.0",
			"status":       "running",
			"health_check": "/health",
		})
	}
}

func GetHealth(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": internal.NowString(),
		})
	}
}

// PostBackup archives the current collections.
func PostBackup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		location, err := app.Backups().BackupAll(c.Request.Context())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to create backup")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{
			"message":  "Backup created successfully",
			"location": location,
		})
	}
}
