// Package deps bundles the collaborators every screen needs so that screen
// constructors stay short.
package deps

import (
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/speech"
	"github.com/abhisek/studybuddy/internal/store"
)

// Deps is passed by value to screen constructors.
type Deps struct {
	Session  *session.Orchestrator
	Catalog  *locale.Catalog
	Profiles store.ProfileRepo
	Events   store.EventRepo
	Logger   *logger.Logger

	// Voice is nil when voice input is unavailable.
	Voice *speech.Listener

	// Menu builds the topic-entry screen. Screens deeper in the flow use it
	// to start over without importing the home package.
	Menu func() screen.Screen

	// Study builds the plan screen.
	Study func() screen.Screen
}

// T is shorthand for Catalog.T.
func (d Deps) T(key locale.Key, args ...any) string {
	return d.Catalog.T(key, args...)
}

// Log returns the logger, or a no-op logger when none is set.
func (d Deps) Log() *logger.Logger {
	if d.Logger == nil {
		return logger.Nop()
	}
	return d.Logger
}
