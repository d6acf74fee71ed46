package reminder

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/streak"
)

// RandomSource picks an index in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a RandomSource backed by the global generator.
func NewRandomSource() RandomSource {
	return globalRand{}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Reminder is a rendered reminder.
type Reminder struct {
	Title    string
	Headline string
	Text     string
}

// Policy selects reminder text. It performs no I/O.
type Policy struct {
	rng RandomSource
}

// NewPolicy creates a policy; a nil rng uses the global generator.
func NewPolicy(rng RandomSource) *Policy {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &Policy{rng: rng}
}

// Templates returns the catalogue Select draws from.
func Templates(atRisk int, mode Mode) []string {
	switch {
	case mode == ModeStrict && atRisk <= 0:
		return strictFreshTemplates
	case mode == ModeStrict:
		return strictTemplates
	case atRisk <= 0:
		return normalFreshTemplates
	default:
		return normalTemplates
	}
}

// Select picks a template uniformly at random, fills in the at-risk count
// and prefixes the ISO date.
func (p *Policy) Select(atRisk int, mode Mode, today streak.Date) string {
	templates := Templates(atRisk, mode)
	t := templates[p.rng.IntN(len(templates))]
	return fmt.Sprintf("%s - %s", today.String(), render(t, atRisk))
}

// Build assembles the full reminder for a missed check.
func (p *Policy) Build(atRisk int, mode Mode, kind checklog.Kind, today streak.Date) Reminder {
	return Reminder{
		Title:    Title(mode, kind),
		Headline: Headline(atRisk, mode),
		Text:     p.Select(atRisk, mode, today),
	}
}

// Headline returns the bucketed status line for an at-risk streak.
func Headline(atRisk int, mode Mode) string {
	strict := mode == ModeStrict
	switch {
	case atRisk <= 0:
		return pick(strict, headlineZeroStrict, headlineZeroNormal)
	case atRisk == 1:
		return pick(strict, headlineOneStrict, headlineOneNormal)
	}
	for _, b := range headlineBuckets {
		if b.upper == 0 || atRisk < b.upper {
			return strings.ReplaceAll(pick(strict, b.strict, b.normal), "{n}", strconv.Itoa(atRisk))
		}
	}
	return ""
}

// Title returns the notification title for a reminder.
func Title(mode Mode, kind checklog.Kind) string {
	if mode == ModeStrict && kind == checklog.KindEvening {
		return "🚨 URGENT: GitHub Streak Dying!"
	}
	return "GitHub Streak Reminder"
}

func render(template string, atRisk int) string {
	return strings.ReplaceAll(template, "{days}", days(atRisk))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

func pick(strict bool, strictText, normalText string) string {
	if strict {
		return strictText
	}
	return normalText
}
