package wizard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/viewevents"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/uiloop"
	"github.com/dshills/walletview/internal/view"
)

// Bus is the part of the event bus used by wizards and their panels.
type Bus interface {
	view.Registrar
	Post(ctx context.Context, evt event.Event)
}

// Scheduler runs work on the UI loop.
type Scheduler interface {
	Post(task uiloop.Task) error
	MustBeOnLoop(ctx context.Context, op string)
}

// Env holds the collaborators shared by a wizard and its panels.
type Env struct {
	Bus       Bus
	Loop      Scheduler
	Notifier  *viewevents.Notifier
	Localizer i18n.Localizer
	Logger    zerolog.Logger
}
