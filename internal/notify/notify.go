package notify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
)

// Notifier delivers a titled message to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Deliver sends through n and swallows any failure after logging it.
// It reports whether delivery succeeded.
func Deliver(logger *slog.Logger, n Notifier, title, message string) bool {
	if n == nil {
		return false
	}
	if err := n.Notify(title, message); err != nil {
		if logger != nil {
			logger.Warn("notification failed", "title", title, "error", err)
		}
		return false
	}
	return true
}

// Desktop shows native desktop notifications.
type Desktop struct {
	AppName string
}

func (d Desktop) Notify(title, message string) error {
	if d.AppName != "" {
		beeep.AppName = d.AppName
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	messageStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// Terminal writes notifications as styled text.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal returns a Terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Notify(title, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.out, "%s\n%s\n", titleStyle.Render(title), messageStyle.Render(message))
	return err
}

// Multi fans a notification out to every notifier. All are attempted; the
// returned error joins the failures.
type Multi []Notifier

func (m Multi) Notify(title, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ForConfig picks the notifier for the configured channels. Desktop
// delivery is paired with terminal output, which still shows the reminder
// when no notification daemon is running.
func ForConfig(desktop bool, appName string, out io.Writer) Notifier {
	term := NewTerminal(out)
	if !desktop {
		return term
	}
	return Multi{Desktop{AppName: appName}, term}
}
