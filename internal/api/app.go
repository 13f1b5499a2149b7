package api

import (
	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/auth"
	"github.com/chaisthra/vibetrack/internal/config"
	"github.com/chaisthra/vibetrack/internal/llm"
	"github.com/chaisthra/vibetrack/internal/storage"
	"github.com/chaisthra/vibetrack/internal/voice"
)

type App interface {
	Logger() internal.Logger
	Config() *config.Config
	Users() storage.UserRepository
	Activities() storage.ActivityRepository
	Categories() storage.CategoryRepository
	Backups() storage.BackupRepository
	Tokens() *auth.JWTManager
	Categorizer() llm.Categorizer
	Assistant() llm.Assistant
	Transcripts() voice.TranscriptFetcher
	Sessions() *voice.SessionManager
}

// Application is the concrete dependency bundle wired up in main.
type Application struct {
	Log         internal.Logger
	Cfg         *config.Config
	Repos       storage.Repositories
	JWT         *auth.JWTManager
	LLM         llm.Categorizer
	Chat        llm.Assistant
	Voice       voice.TranscriptFetcher
	SessionSlot *voice.SessionManager
}

func (a *Application) Logger() internal.Logger                  { return a.Log }
func (a *Application) Config() *config.Config                   { return a.Cfg }
func (a *Application) Users() storage.UserRepository            { return a.Repos.Users }
func (a *Application) Activities() storage.ActivityRepository   { return a.Repos.Activities }
func (a *Application) Categories() storage.CategoryRepository   { return a.Repos.Categories }
func (a *Application) Backups() storage.BackupRepository        { return a.Repos.Backups }
func (a *Application) Tokens() *auth.JWTManager                 { return a.JWT }
func (a *Application) Categorizer() llm.Categorizer             { return a.LLM }
func (a *Application) Assistant() llm.Assistant                 { return a.Chat }
func (a *Application) Transcripts() voice.TranscriptFetcher     { return a.Voice }
func (a *Application) Sessions() *voice.SessionManager          { return a.SessionSlot }

var _ App = (*Application)(nil)
