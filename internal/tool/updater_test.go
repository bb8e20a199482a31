package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/lrstanley/go-ytdlp"
)

func TestUpdater_EnsureSuccess(t *testing.T) {
	updater := NewUpdater(nil)

	var states []UpdateState
	updater.SetChangeCallback(func(state UpdateState, _ string) {
		states = append(states, state)
	})

	updater.install = func(_ context.Context, opts *ytdlp.InstallOptions) (*ytdlp.ResolvedInstall, error) {
		if opts.DisableDownload {
			t.Error("First resolution attempt should allow downloading")
		}
		return &ytdlp.ResolvedInstall{
			Executable: "/tmp/yt-dlp",
			Version:    "2025.08.20",
			Downloaded: true,
		}, nil
	}

	if err := updater.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if !updater.IsReady() {
		t.Error("Updater should be ready after successful install")
	}
	if updater.Version() != "2025.08.20" {
		t.Errorf("Expected version 2025.08.20, got %s", updater.Version())
	}

	expected := []UpdateState{UpdateStateChecking, UpdateStateDownloading, UpdateStateReady}
	if len(states) != len(expected) {
		t.Fatalf("Expected states %v, got %v", expected, states)
	}
	for i, state := range expected {
		if states[i] != state {
			t.Errorf("State %d: expected %s, got %s", i, state, states[i])
		}
	}
}

func TestUpdater_EnsureFallbackToCachedBinary(t *testing.T) {
	updater := NewUpdater(nil)

	calls := 0
	updater.install = func(_ context.Context, opts *ytdlp.InstallOptions) (*ytdlp.ResolvedInstall, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("network unreachable")
		}
		if !opts.DisableDownload || !opts.AllowVersionMismatch {
			t.Error("Fallback attempt should only resolve existing binaries")
		}
		return &ytdlp.ResolvedInstall{
			Executable: "/usr/local/bin/yt-dlp",
			Version:    "2025.06.09",
			FromCache:  true,
		}, nil
	}

	if err := updater.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure should succeed via cached binary: %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected 2 resolution attempts, got %d", calls)
	}
	if !updater.IsReady() {
		t.Error("Updater should be ready after fallback resolution")
	}
	if updater.Version() != "2025.06.09" {
		t.Errorf("Expected cached version, got %s", updater.Version())
	}
}

func TestUpdater_EnsureError(t *testing.T) {
	updater := NewUpdater(nil)

	updater.install = func(_ context.Context, _ *ytdlp.InstallOptions) (*ytdlp.ResolvedInstall, error) {
		return nil, errors.New("no binary available")
	}

	err := updater.Ensure(context.Background())
	if err == nil {
		t.Fatal("Ensure should fail when no binary resolves")
	}

	if updater.State() != UpdateStateError {
		t.Errorf("Expected Error state, got %s", updater.State())
	}
	if updater.IsReady() {
		t.Error("Updater must not report ready after failure")
	}
	if updater.LastError() == "" {
		t.Error("LastError should be populated after failure")
	}
}

func TestUpdater_InitialState(t *testing.T) {
	updater := NewUpdater(nil)

	if updater.State() != UpdateStateChecking {
		t.Errorf("Expected initial state Checking, got %s", updater.State())
	}
	if updater.IsReady() {
		t.Error("Updater must not be ready before Ensure runs")
	}
	if updater.Version() != "" {
		t.Error("Version should be empty before resolution")
	}
}
