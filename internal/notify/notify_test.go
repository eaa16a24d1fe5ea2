package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func fakeDesktop(goos string, lookupErr error) (*Desktop, *[]call) {
	var calls []call
	d := NewDesktop(25)
	d.goos = goos
	d.lookup = func(file string) (string, error) {
		if lookupErr != nil {
			return "", lookupErr
		}
		return "/usr/bin/" + file, nil
	}
	d.run = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return nil
	}
	return d, &calls
}

func TestMessage(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Write report", "Write report: 25 minutes of focus done. Time for a break."},
		{"", "25 minutes of focus done. Time for a break."},
		{"   ", "25 minutes of focus done. Time for a break."},
	}
	for _, tt := range tests {
		if got := Message(tt.label, 25); got != tt.want {
			t.Errorf("Message(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	if err := NewBell(&buf).NotifyCompletion("x"); err != nil {
		t.Fatalf("NotifyCompletion: %v", err)
	}
	if buf.String() != "\a" {
		t.Errorf("wrote %q, want bell", buf.String())
	}
}

func TestDesktopCommands(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArg  string
	}{
		{"linux", "notify-send", Title},
		{"darwin", "osascript", "display notification"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			d, calls := fakeDesktop(tt.goos, nil)
			if err := d.NotifyCompletion("Write report"); err != nil {
				t.Fatalf("NotifyCompletion: %v", err)
			}
			if len(*calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(*calls))
			}
			c := (*calls)[0]
			if c.name != tt.wantName {
				t.Errorf("name = %q, want %q", c.name, tt.wantName)
			}
			joined := strings.Join(c.args, " ")
			if !strings.Contains(joined, tt.wantArg) || !strings.Contains(joined, "Write report") {
				t.Errorf("args = %q", joined)
			}
		})
	}
}

func TestDesktopUnsupported(t *testing.T) {
	d, calls := fakeDesktop("windows", nil)
	if err := d.NotifyCompletion("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}

	d, calls = fakeDesktop("linux", errors.New("not found"))
	if err := d.NotifyCompletion("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if len(*calls) != 0 {
		t.Errorf("ran %d commands, want 0", len(*calls))
	}
}

type stub struct {
	calls int
	err   error
}

func (s *stub) NotifyCompletion(string) error {
	s.calls++
	return s.err
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	first, second, third := &stub{err: boom}, &stub{}, &stub{}
	err := Multi{first, second, third}.NotifyCompletion("x")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	for i, s := range []*stub{first, second, third} {
		if s.calls != 1 {
			t.Errorf("notifier %d called %d times, want 1", i, s.calls)
		}
	}
	if err := (Multi{}).NotifyCompletion("x"); err != nil {
		t.Errorf("empty Multi = %v", err)
	}
	if err := (Nop{}).NotifyCompletion("x"); err != nil {
		t.Errorf("Nop = %v", err)
	}
}
