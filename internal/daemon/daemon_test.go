package daemon

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"lantern/internal/config"
	"lantern/internal/level"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Sinks.Console.Enabled = false
	cfg.Sinks.File = config.FileSink{Enabled: true, Path: filepath.Join(dir, "lantern.log"), Threshold: "info"}
	cfg.Sinks.Store = config.StoreSink{Enabled: true, Path: filepath.Join(dir, "lantern.db"), Threshold: "warning"}
	cfg.Modules = map[string]string{"noise.go": "critical"}
	return cfg
}

func TestStartWiresSinksFromConfig(t *testing.T) {
	cfg := testConfig(t)
	d, err := New(cfg, "", quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	engine := d.Engine()
	subs := engine.Subscriptions()
	if len(subs) != 3 {
		t.Fatalf("expected file, store and tail subscriptions, got %+v", subs)
	}
	if subs[0].Name != "file" || subs[0].Threshold != level.Info {
		t.Fatalf("unexpected file subscription: %+v", subs[0])
	}
	if subs[1].Name != "store" || subs[1].Threshold != level.Warning {
		t.Fatalf("unexpected store subscription: %+v", subs[1])
	}
	if subs[2].Name != "tail" {
		t.Fatalf("unexpected tail subscription: %+v", subs[2])
	}
	if got := engine.ModuleThreshold("noise.go"); got != level.Critical {
		t.Fatalf("module threshold not applied: %v", got)
	}

	engine.Emit(level.Error, "power fault")
	if engine.Stats().Delivered != 3 {
		t.Fatalf("expected delivery to every sink, stats: %+v", engine.Stats())
	}
	events := d.Tail(0)
	if len(events) != 1 || events[0].Message != "power fault" {
		t.Fatalf("tail ring missed the delivery: %+v", events)
	}
}

func TestStartEnforcesSingleInstance(t *testing.T) {
	cfg := testConfig(t)
	first, err := New(cfg, "", quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := first.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	defer first.Stop()

	second, err := New(cfg, "", quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := second.Start(); err == nil {
		second.Stop()
		t.Fatal("expected second instance to be rejected")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sinks.Store.Enabled = false
	d, err := New(cfg, "", quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
