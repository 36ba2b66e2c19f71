package level

import "testing"

func TestOrdering(t *testing.T) {
	ordered := All()
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Fatalf("expected %s < %s", ordered[i-1], ordered[i])
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, lvl := range All() {
		parsed, err := Parse(lvl.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", lvl.String(), err)
		}
		if parsed != lvl {
			t.Fatalf("Parse(%q) = %v, want %v", lvl.String(), parsed, lvl)
		}
	}
}

func TestParseAliases(t *testing.T) {
	cases := map[string]Level{
		"warn":     Warning,
		" info ":   Info,
		"critical": Critical,
		"TRACE":    Trace,
		"Debug":    Debug,
	}
	for name, want := range cases {
		got, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", name, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("verbose"); err == nil {
		t.Fatal("expected error for unknown level name")
	}
}

func TestValid(t *testing.T) {
	if Level(0).Valid() {
		t.Fatal("zero level should not be valid")
	}
	if !Warning.Valid() {
		t.Fatal("Warning should be valid")
	}
	if Level(Always + 1).Valid() {
		t.Fatal("level past Always should not be valid")
	}
}

func TestAutoThreshold(t *testing.T) {
	tests := []struct {
		name    string
		enabled Enabled
		want    Level
	}{
		{"all enabled", AllEnabled(), Trace},
		{"trace disabled", Enabled{Debug: true, Info: true, Warning: true, Error: true, Critical: true, Always: true}, Debug},
		{"errors only", Enabled{Error: true, Critical: true, Always: true}, Error},
		{"all disabled", Enabled{}, Always},
	}
	for _, tc := range tests {
		if got := AutoThreshold(tc.enabled); got != tc.want {
			t.Errorf("%s: AutoThreshold = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestUnknownString(t *testing.T) {
	if got := Level(42).String(); got != "UNKNOWN" {
		t.Fatalf("Level(42).String() = %q, want UNKNOWN", got)
	}
}
