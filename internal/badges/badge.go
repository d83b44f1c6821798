// Package badges derives achievement badges from study progress.
package badges

import "github.com/abhisek/studybuddy/internal/locale"

// ID identifies a badge.
type ID string

const (
	FirstStep       ID = "first_step"
	CuriousMind     ID = "curious_mind"
	Halfway         ID = "halfway"
	Master          ID = "master"
	ChallengeMaster ID = "challenge_master"
	QuizChampion    ID = "quiz_champion"
)

// All returns every badge in display order.
func All() []ID {
	return []ID{FirstStep, CuriousMind, Halfway, Master, ChallengeMaster, QuizChampion}
}

// Valid reports whether id is a known badge.
func (id ID) Valid() bool {
	switch id {
	case FirstStep, CuriousMind, Halfway, Master, ChallengeMaster, QuizChampion:
		return true
	}
	return false
}

// Icon returns the display icon for the badge.
func (id ID) Icon() string {
	switch id {
	case FirstStep:
		return "🚀"
	case CuriousMind:
		return "🧠"
	case Halfway:
		return "🚩"
	case Master:
		return "👑"
	case ChallengeMaster:
		return "⚔️"
	case QuizChampion:
		return "🏆"
	default:
		return "✦"
	}
}

// Name returns the localized display name.
func (id ID) Name(c *locale.Catalog) string {
	switch id {
	case FirstStep:
		return c.T(locale.BadgeFirstStepName)
	case CuriousMind:
		return c.T(locale.BadgeCuriousMindName)
	case Halfway:
		return c.T(locale.BadgeHalfwayName)
	case Master:
		return c.T(locale.BadgeMasterName)
	case ChallengeMaster:
		return c.T(locale.BadgeChallengeMasterName)
	case QuizChampion:
		return c.T(locale.BadgeQuizChampionName)
	default:
		return string(id)
	}
}

// Description returns the localized description of how the badge is earned.
func (id ID) Description(c *locale.Catalog) string {
	switch id {
	case FirstStep:
		return c.T(locale.BadgeFirstStepDesc)
	case CuriousMind:
		return c.T(locale.BadgeCuriousMindDesc)
	case Halfway:
		return c.T(locale.BadgeHalfwayDesc)
	case Master:
		return c.T(locale.BadgeMasterDesc)
	case ChallengeMaster:
		return c.T(locale.BadgeChallengeMasterDesc)
	case QuizChampion:
		return c.T(locale.BadgeQuizChampionDesc)
	default:
		return ""
	}
}
