package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"lantern/internal/config"
	"lantern/internal/dispatch"
	"lantern/internal/metrics"
	"lantern/internal/sink"
)

// Daemon hosts a demo engine runtime: configured sinks, sample emitters,
// the metrics endpoint, config watching, and single-instance enforcement.
type Daemon struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger

	engine  *dispatch.Engine
	ring    *sink.Memory
	closers []io.Closer

	lockPath string
	lock     *flock.Flock
}

// New wires a daemon from cfg. configPath may be empty; without it config
// watching is disabled.
func New(cfg *config.Config, configPath string, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires a config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	lockPath := filepath.Join(os.TempDir(), "lantern.lock")
	return &Daemon{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		ring:       sink.NewMemory(512),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Engine returns the running engine; nil before Start.
func (d *Daemon) Engine() *dispatch.Engine { return d.engine }

// Tail returns buffered deliveries with sequence numbers greater than
// since, oldest first.
func (d *Daemon) Tail(since uint64) []sink.Event { return d.ring.Events(since) }

// Start builds the engine, subscribes the configured sinks and opens the
// platform for concurrent dispatch.
func (d *Daemon) Start() error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !ok {
		return errors.New("another lantern instance is already running")
	}

	engine := dispatch.New(d.cfg.EngineOptions())
	if err := engine.Initialize(); err != nil {
		d.release()
		return err
	}
	if err := d.cfg.ApplyModuleThresholds(engine); err != nil {
		d.logger.Warn("module thresholds partially applied", "error", err)
	}
	if err := d.subscribeSinks(engine); err != nil {
		d.closeAll()
		d.release()
		return err
	}
	// The tail ring rides along regardless of configured sinks so recent
	// traffic is always inspectable.
	if err := engine.Subscribe("tail", d.ring.Func(), engine.AutoThreshold()); err != nil {
		d.closeAll()
		d.release()
		return fmt.Errorf("subscribe tail ring: %w", err)
	}

	// Everything registered; from here on dispatch runs under the lock.
	engine.SetPlatformReady(true)
	d.engine = engine
	d.logger.Info("lantern daemon started",
		"lock", d.lockPath,
		"auto_threshold", engine.AutoThreshold().String())
	return nil
}

func (d *Daemon) subscribeSinks(engine *dispatch.Engine) error {
	if d.cfg.Sinks.Console.Enabled {
		threshold := d.cfg.SinkThreshold(d.cfg.Sinks.Console.Threshold)
		if err := engine.Subscribe("console", sink.Console(os.Stdout), threshold); err != nil {
			return fmt.Errorf("subscribe console sink: %w", err)
		}
	}
	if d.cfg.Sinks.File.Enabled {
		file, err := sink.NewFile(d.cfg.Sinks.File.Path)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, file)
		threshold := d.cfg.SinkThreshold(d.cfg.Sinks.File.Threshold)
		if err := engine.Subscribe("file", file.Func(), threshold); err != nil {
			return fmt.Errorf("subscribe file sink: %w", err)
		}
	}
	if d.cfg.Sinks.Store.Enabled {
		store, err := sink.OpenStore(d.cfg.Sinks.Store.Path, d.logger)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, store)
		threshold := d.cfg.SinkThreshold(d.cfg.Sinks.Store.Threshold)
		if err := engine.Subscribe("store", store.Func(), threshold); err != nil {
			return fmt.Errorf("subscribe store sink: %w", err)
		}
		d.logger.Info("log store opened", "path", d.cfg.Sinks.Store.Path, "session", store.Session())
	}
	return nil
}

// Run starts the daemon and blocks until ctx is canceled. It drives the
// sample emitters, serves metrics when enabled, and re-applies module
// thresholds on config changes.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	var httpSrv *http.Server
	if d.cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(d.engine))
		mux.HandleFunc("/logs", d.handleLogs)
		httpSrv = &http.Server{Addr: d.cfg.Metrics.Bind, Handler: mux}
		go func() {
			d.logger.Info("metrics listening", "bind", d.cfg.Metrics.Bind)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	var watcher *config.Watcher
	if d.configPath != "" {
		watcher = config.NewWatcher(d.configPath, d.logger)
		watcher.OnReload(func(cfg *config.Config) {
			if err := cfg.ApplyModuleThresholds(d.engine); err != nil {
				d.logger.Warn("reapply module thresholds", "error", err)
			}
		})
		if err := watcher.Start(); err != nil {
			d.logger.Warn("config watch disabled", "error", err)
			watcher = nil
		}
	}

	emitters := newEmitters(d.engine)
	emitters.start(ctx)

	<-ctx.Done()
	emitters.wait()
	if watcher != nil {
		watcher.Stop()
	}
	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}

	stats := d.engine.Stats()
	d.logger.Info("lantern daemon stopped",
		"delivered", stats.Delivered,
		"dropped", stats.Dropped,
		"lock_timeouts", stats.LockTimeouts)
	return nil
}

func (d *Daemon) handleLogs(w http.ResponseWriter, r *http.Request) {
	since, _ := strconv.ParseUint(r.URL.Query().Get("since"), 10, 64)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, event := range d.Tail(since) {
		fmt.Fprintf(w, "%d %s %s: %s\n",
			event.Sequence,
			event.Timestamp.Format(time.RFC3339),
			event.Level,
			event.Message)
	}
}

// Stop tears down sinks, the engine, and the instance lock.
func (d *Daemon) Stop() {
	if d.engine != nil {
		_ = d.engine.Close()
		d.engine = nil
	}
	d.closeAll()
	d.release()
}

func (d *Daemon) closeAll() {
	for _, closer := range d.closers {
		if err := closer.Close(); err != nil {
			d.logger.Warn("close sink", "error", err)
		}
	}
	d.closers = nil
}

func (d *Daemon) release() {
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", "error", err)
	}
}
