// Package notify delivers the end-of-session alert.
package notify

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/iammorganparry/focus/internal/session"
)

// Title is the heading of every completion notification.
const Title = "Focus session complete"

// ErrUnsupported is returned when no desktop notifier exists on this system.
var ErrUnsupported = errors.New("desktop notifications not supported")

// Message builds the notification body for a finished session on label.
func Message(label string, minutes int) string {
	if strings.TrimSpace(label) == "" {
		return fmt.Sprintf("%d minutes of focus done. Time for a break.", minutes)
	}
	return fmt.Sprintf("%s: %d minutes of focus done. Time for a break.", label, minutes)
}

// Bell rings the terminal bell.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) NotifyCompletion(string) error {
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Runner starts an external command without waiting for it to exit.
type Runner func(name string, args ...string) error

// Desktop posts a native desktop notification through notify-send on Linux
// and osascript on macOS.
type Desktop struct {
	minutes int
	goos    string
	lookup  func(file string) (string, error)
	run     Runner
}

func NewDesktop(minutes int) *Desktop {
	return &Desktop{
		minutes: minutes,
		goos:    runtime.GOOS,
		lookup:  exec.LookPath,
		run:     startDetached,
	}
}

func (d *Desktop) NotifyCompletion(label string) error {
	name, args, err := d.command(label)
	if err != nil {
		return err
	}
	if _, err := d.lookup(name); err != nil {
		return fmt.Errorf("%w: %s not found", ErrUnsupported, name)
	}
	if err := d.run(name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

func (d *Desktop) command(label string) (string, []string, error) {
	body := Message(label, d.minutes)
	switch d.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=focus", Title, body}, nil
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, Title)
		return "osascript", []string{"-e", script}, nil
	default:
		return "", nil, fmt.Errorf("%w on %s", ErrUnsupported, d.goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Multi fans a completion out to every notifier. All of them run even when
// one fails; the failures are joined.
type Multi []session.Notifier

func (m Multi) NotifyCompletion(label string) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyCompletion(label); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) NotifyCompletion(string) error { return nil }
