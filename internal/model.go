package internal

import "time"

// TimeLayout is the canonical timestamp format for everything the store
// persists. Fixed-width UTC so lexicographic comparison orders correctly.
const TimeLayout = "2006-01-02T15:04:05Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func NowString() string {
	return FormatTime(time.Now())
}

type Settings struct {
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "dark", NotificationsEnabled: true}
}

type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	FullName       string   `json:"full_name"`
	HashedPassword string   `json:"hashed_password"`
	CreatedAt      string   `json:"created_at"`
	LastLogin      string   `json:"last_login,omitempty"`
	ElevenLabsKey  string   `json:"elevenlabs_key,omitempty"`
	Settings       Settings `json:"settings"`
}

// UserProfile is the outward representation of a user. The password hash
// never leaves the store through this type.
type UserProfile struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	FullName      string   `json:"full_name"`
	CreatedAt     string   `json:"created_at"`
	LastLogin     string   `json:"last_login,omitempty"`
	ElevenLabsKey string   `json:"elevenlabs_key,omitempty"`
	Settings      Settings `json:"settings"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
		ElevenLabsKey: u.ElevenLabsKey,
		Settings:      u.Settings,
	}
}

// UserUpdate carries optional profile changes; nil fields are left untouched.
type UserUpdate struct {
	Email          *string
	FullName       *string
	ElevenLabsKey  *string
	HashedPassword *string
	LastLogin      *string
}

const (
	ActivityTypeText  = "text"
	ActivityTypeVoice = "voice"
)

// Activity is a single journaled note. Records are created once and never
// mutated or deleted.
type Activity struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Type           string `json:"type"`
	RawText        string `json:"raw_text"`
	ProcessedText  string `json:"processed_text"`
	Category       string `json:"category,omitempty"`
	Timestamp      string `json:"timestamp"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// UserCategoryStats is the per-owner sub-record of a counter entry.
type UserCategoryStats struct {
	Count     int    `json:"count"`
	FirstUsed string `json:"first_used"`
	LastUsed  string `json:"last_used"`
}

// CounterEntry aggregates use of one category across all users. Count is a
// running counter, never recomputed from the activity collection.
type CounterEntry struct {
	Count        int                           `json:"count"`
	FirstSeen    string                        `json:"first_seen"`
	ContextClues []string                      `json:"context_clues,omitempty"`
	UserStats    map[string]*UserCategoryStats `json:"user_stats"`
}
