package api

import (
	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/chat"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

type App interface {
	Logger() internal.Logger
	Store() storage.Store
	Machine() *chat.Machine
	Tests() *survey.Registry
}
