package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iammorganparry/focus/internal/config"
	"github.com/iammorganparry/focus/internal/model"
)

func TestResolveTask(t *testing.T) {
	list := []model.Task{
		{ID: "abc123", Text: "A"},
		{ID: "abd456", Text: "B"},
		{ID: "ab", Text: "C"},
	}
	tests := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc", "A", false},
		{"abd4", "B", false},
		{"ab", "C", false},
		{"a", "", true},
		{"zzz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := resolveTask(list, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Text != tt.want {
				t.Errorf("got %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestInitConfig(t *testing.T) {
	for _, k := range []string{"FOCUS_DATA_DIR", "LOG_LEVEL", "FOCUS_STORAGE", "FOCUS_DB_PATH", "PORT", "FOCUS_API_KEY", "FOCUS_SOUND", "FOCUS_DESKTOP_NOTIFY"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "focus", "config.yaml")

	if err := initConfig(path, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}

	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err = initConfig(path, false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second initConfig = %v, want already exists", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "log_level: debug\n" {
		t.Errorf("existing file was overwritten: %q", data)
	}

	if err := initConfig(path, true); err != nil {
		t.Fatalf("initConfig force: %v", err)
	}
	cfg, err = config.Load(path)
	if err != nil || cfg.LogLevel != "info" {
		t.Errorf("forced init: cfg = %+v, err = %v", cfg, err)
	}
}
