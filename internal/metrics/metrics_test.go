package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"lantern/internal/dispatch"
	"lantern/internal/level"
)

func TestCollectorReportsEngineStats(t *testing.T) {
	engine := dispatch.New(dispatch.Options{})
	if err := engine.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer engine.Close()

	if err := engine.Subscribe("noop", func(level.Level, string) {}, level.Trace); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	engine.Emit(level.Info, "one")
	engine.Emit(level.Info, "two")

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(engine))

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			values[family.GetName()] = metric.GetCounter().GetValue()
		}
	}
	if values["lantern_dispatch_delivered_total"] != 2 {
		t.Fatalf("delivered_total = %v, want 2", values["lantern_dispatch_delivered_total"])
	}
	if values["lantern_dispatch_dropped_total"] != 0 {
		t.Fatalf("dropped_total = %v, want 0", values["lantern_dispatch_dropped_total"])
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	engine := dispatch.New(dispatch.Options{})
	if err := engine.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer engine.Close()

	server := httptest.NewServer(Handler(engine))
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := make([]byte, 16*1024)
	n, _ := resp.Body.Read(body)
	if !strings.Contains(string(body[:n]), "lantern_dispatch_delivered_total") {
		t.Fatalf("metrics body missing counter: %s", body[:n])
	}
}
