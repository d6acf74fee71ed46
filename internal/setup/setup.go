package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rpggio/streakwatch/internal/config"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
)

var (
	// ErrAborted is returned when the user declines to overwrite or quits the form.
	ErrAborted = errors.New("setup aborted: existing configuration preserved")

	ErrMissingUsername = errors.New("github username is required")
	ErrMissingToken    = errors.New("github token is required")
)

const tokenHelp = `1. Go to https://github.com/settings/tokens
2. Generate new token (classic)
3. Make sure you understand the permissions a token grants
4. Select 'repo' and 'user' scopes
5. Copy the token`

// Answers are the raw responses collected from the user.
type Answers struct {
	Overwrite   bool
	ResetStreak bool
	Username    string
	Token       string
	Mode        reminder.Mode
}

// Prompter collects answers. existing is nil on first run.
type Prompter interface {
	Prompt(ctx context.Context, existing *config.Config) (Answers, error)
}

// Result is the configuration to save and whether to wipe the streak record.
type Result struct {
	Config      config.Config
	ResetStreak bool
}

// Run prompts the user and turns the answers into a Result.
func Run(ctx context.Context, p Prompter, existing *config.Config) (Result, error) {
	answers, err := p.Prompt(ctx, existing)
	if errors.Is(err, huh.ErrUserAborted) {
		return Result{}, ErrAborted
	}
	if err != nil {
		return Result{}, fmt.Errorf("setup prompt: %w", err)
	}
	return Plan(existing, answers)
}

// Plan decides what setup does with a set of answers. Blank username and
// token keep the existing values.
func Plan(existing *config.Config, a Answers) (Result, error) {
	if existing != nil && !a.Overwrite {
		return Result{}, ErrAborted
	}
	cfg := config.Apply(existing, config.Update{
		Username: a.Username,
		Token:    a.Token,
		Mode:     a.Mode,
	})
	if strings.TrimSpace(cfg.GitHub.Username) == "" {
		return Result{}, ErrMissingUsername
	}
	if strings.TrimSpace(cfg.GitHub.Token) == "" {
		return Result{}, ErrMissingToken
	}
	return Result{Config: cfg, ResetStreak: existing != nil && a.ResetStreak}, nil
}

// Form prompts with an interactive huh form.
type Form struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
}

func (f Form) Prompt(ctx context.Context, existing *config.Config) (Answers, error) {
	var a Answers

	if existing != nil {
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewNote().
				Title("Configuration already exists").
				Description("Username: "+existing.GitHub.Username),
			huh.NewConfirm().
				Title("Overwrite existing configuration?").
				Affirmative("Yes").
				Negative("No").
				Value(&a.Overwrite),
		))
		if err := f.run(ctx, confirm); err != nil {
			return a, err
		}
		if !a.Overwrite {
			return a, nil
		}
	}

	usernameTitle := "GitHub username"
	tokenTitle := "GitHub personal access token"
	a.Mode = reminder.ModeNormal
	if existing != nil {
		usernameTitle = fmt.Sprintf("GitHub username [%s]", existing.GitHub.Username)
		tokenTitle += " (leave blank to keep existing)"
		a.Mode = existing.Reminder.Mode
	}

	account := []huh.Field{
		huh.NewInput().
			Title(usernameTitle).
			Value(&a.Username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" && (existing == nil || existing.GitHub.Username == "") {
					return ErrMissingUsername
				}
				return nil
			}),
		huh.NewNote().Title("To get a token").Description(tokenHelp),
		huh.NewInput().
			Title(tokenTitle).
			EchoMode(huh.EchoModePassword).
			Value(&a.Token).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" && (existing == nil || existing.GitHub.Token == "") {
					return ErrMissingToken
				}
				return nil
			}),
		huh.NewSelect[reminder.Mode]().
			Title("Reminder mode").
			Options(
				huh.NewOption("Normal - friendly reminders", reminder.ModeNormal),
				huh.NewOption("Strict - aggressive reminders", reminder.ModeStrict),
			).
			Value(&a.Mode),
	}
	if existing != nil {
		account = append(account, huh.NewConfirm().
			Title("Delete previous streak records as well?").
			Affirmative("Yes").
			Negative("No").
			Value(&a.ResetStreak))
	}

	if err := f.run(ctx, huh.NewForm(huh.NewGroup(account...))); err != nil {
		return a, err
	}
	return a, nil
}

func (f Form) run(ctx context.Context, form *huh.Form) error {
	if f.In != nil {
		form = form.WithInput(f.In)
	}
	if f.Out != nil {
		form = form.WithOutput(f.Out)
	}
	return form.WithAccessible(f.Accessible).RunWithContext(ctx)
}
