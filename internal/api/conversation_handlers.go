package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/service"
)

func voiceAPIKey(c *gin.Context, user *internal.User, fallback string) string {
	if user.ElevenLabsKey != "" {
		return user.ElevenLabsKey
	}
	if key := c.GetHeader("X-API-KEY"); key != "" {
		return key
	}
	return fallback
}

// PostStartConversation opens a voice session, replacing any session already
// running.
func PostStartConversation(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		if voiceAPIKey(c, user, app.Config().ElevenLabsAPIKey) == "" {
			HandleError(c, app.Logger(), errors.New("missing api key"), 400, "ElevenLabs API key not provided")
			return
		}

		session, replaced := app.Sessions().Start(user.Username, app.Config().VoiceAgentID)
		if replaced != nil {
			app.Logger().Warnf("voice: replaced active session %s owned by %s", replaced.ID, replaced.UserID)
		}
		HandleSuccess(c, app.Logger(), session, map[string]any{"message": "Conversation started successfully"})
	}
}

// PostEndConversation closes the active session, fetches its transcript, and
// journals every user utterance as a voice activity.
func PostEndConversation(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		session, err := app.Sessions().End()
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "No active conversation to end")
			return
		}

		apiKey := voiceAPIKey(c, user, app.Config().ElevenLabsAPIKey)
		if apiKey == "" {
			HandleError(c, app.Logger(), errors.New("missing api key"), 400, "ElevenLabs API key not provided")
			return
		}

		logged := []internal.Activity{}
		conv, err := app.Transcripts().FetchConversation(c.Request.Context(), session.ID, apiKey)
		if err != nil {
			// The session is already closed; report it ended without
			// transcript-derived activities.
			app.Logger().Errorf("voice: failed to fetch transcript for %s: %v", session.ID, err)
		} else {
			rec := recorder(app)
			for _, entry := range conv.Transcript {
				if entry.Role != "user" || entry.Message == "" {
					continue
				}
				activity, err := rec.LogProcessed(c.Request.Context(), user.Username, entry.Message, internal.ActivityTypeVoice, session.ID)
				if err != nil {
					app.Logger().Errorf("voice: failed to log transcript entry: %v", err)
					continue
				}
				logged = append(logged, *activity)
			}
		}

		HandleSuccess(c, app.Logger(), logged, map[string]any{
			"message":         "Conversation ended successfully",
			"conversation_id": session.ID,
		})
	}
}

// GetConversationHistory lists the caller's journal entries in the dashboard
// history shape, newest first.
func GetConversationHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		activities, err := service.ListActivitiesDesc(c.Request.Context(), app.Activities(), user.Username, "", "")
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch history")
			return
		}

		history := make([]gin.H, 0, len(activities))
		for _, a := range activities {
			entry := gin.H{
				"timestamp": a.Timestamp,
				"type":      a.Type,
				"text":      a.RawText,
				"category":  historyCategory(a),
			}
			if a.ConversationID != "" {
				entry["conversation_id"] = a.ConversationID
			}
			history = append(history, entry)
		}
		HandleSuccess(c, app.Logger(), history, nil)
	}
}

func historyCategory(a internal.Activity) string {
	if a.Category == "" {
		return "uncategorized"
	}
	return a.Category
}
