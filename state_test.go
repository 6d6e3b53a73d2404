package surfacegrid

import (
	"errors"
	"strings"
	"testing"
)

func TestGradientsRoundTrip(t *testing.T) {
	gs := DefaultGradients()
	gs[YBelow].High = HSL{359.5, 0.125, 0.875, 17}

	data, err := MarshalGradients(&gs)
	if err != nil {
		t.Fatalf("MarshalGradients() error: %v", err)
	}
	for _, key := range []string{`"xBelow"`, `"xAbove"`, `"yBelow"`, `"yAbove"`, `"low"`, `"high"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("payload %s missing %s", data, key)
		}
	}

	got, err := UnmarshalGradients(data)
	if err != nil {
		t.Fatalf("UnmarshalGradients() error: %v", err)
	}
	if got != gs {
		t.Errorf("round trip = %+v, want %+v", got, gs)
	}
}

func TestUnmarshalGradientsDocumentedPayload(t *testing.T) {
	payload := `{
		"xBelow": {"low": [220, 0.7, 0.25, 255], "high": [220, 0.6, 0.55, 255]},
		"xAbove": {"low": [30, 0.85, 0.45, 255], "high": [50, 0.95, 0.65, 255]},
		"yBelow": {"low": [190, 0.6, 0.3, 255], "high": [180, 0.5, 0.6, 255]},
		"yAbove": {"low": [0, 0.75, 0.45, 255], "high": [20, 0.9, 0.65, 255]}
	}`
	for _, suffix := range []string{"", "\n", " \t\n "} {
		got, err := UnmarshalGradients([]byte(payload + suffix))
		if err != nil {
			t.Fatalf("UnmarshalGradients(%q suffix) error: %v", suffix, err)
		}
		if got != DefaultGradients() {
			t.Errorf("decoded %+v, want defaults", got)
		}
	}
}

func TestUnmarshalGradientsInvalid(t *testing.T) {
	valid := `"low": [1, 0.5, 0.5, 255], "high": [2, 0.5, 0.5, 255]`
	entry := func(key string) string { return `"` + key + `": {` + valid + `}` }
	three := `{` + entry("xBelow") + `,` + entry("xAbove") + `,` + entry("yBelow") + `,`

	tests := []struct {
		name    string
		payload string
	}{
		{"missing key", three[:len(three)-1] + `}`},
		{"three element color", three + `"yAbove": {"low": [1, 0.5, 0.5], "high": [2, 0.5, 0.5, 255]}}`},
		{"five element color", three + `"yAbove": {"low": [1, 0.5, 0.5, 255, 1], "high": [2, 0.5, 0.5, 255]}}`},
		{"string element", three + `"yAbove": {"low": [1, "0.5", 0.5, 255], "high": [2, 0.5, 0.5, 255]}}`},
		{"null element", three + `"yAbove": {"low": [1, null, 0.5, 255], "high": [2, 0.5, 0.5, 255]}}`},
		{"missing high", three + `"yAbove": {"low": [1, 0.5, 0.5, 255]}}`},
		{"unknown key", three + entry("yAbove") + `, "zBelow": {}}`},
		{"not an object", `[1, 2, 3]`},
		{"null", `null`},
		{"truncated", three},
		{"empty", ``},
		{"trailing object", three + entry("yAbove") + `} {"junk": true}`},
		{"trailing garbage", three + entry("yAbove") + `} trailing`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalGradients([]byte(tt.payload))
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("UnmarshalGradients(%s) error = %v, want ErrInvalidState", tt.payload, err)
			}
		})
	}
}

func TestLoadGradientsFallback(t *testing.T) {
	if got := LoadGradients([]byte(`{"xBelow": 1}`)); got != DefaultGradients() {
		t.Errorf("LoadGradients(invalid) = %+v, want defaults", got)
	}

	gs := DefaultGradients()
	gs[XAbove].Low.H = 45
	data, _ := MarshalGradients(&gs)
	if got := LoadGradients(data); got != gs {
		t.Errorf("LoadGradients(valid) = %+v, want %+v", got, gs)
	}
	if got := LoadGradients(append(data, " {}"...)); got != DefaultGradients() {
		t.Errorf("LoadGradients(trailing data) = %+v, want defaults", got)
	}
}

func TestCutoffPercent(t *testing.T) {
	if got := CutoffFromPercent(50, -2, 2); got != 0 {
		t.Errorf("CutoffFromPercent(50, -2, 2) = %v, want 0", got)
	}
	if got := CutoffFromPercent(0, -2, 2); got != -2 {
		t.Errorf("CutoffFromPercent(0, -2, 2) = %v, want -2", got)
	}
	if got := CutoffFromPercent(100, -2, 2); got != 2 {
		t.Errorf("CutoffFromPercent(100, -2, 2) = %v, want 2", got)
	}

	for pct := 0; pct <= 100; pct++ {
		if got := PercentFromCutoff(CutoffFromPercent(pct, -3, 7), -3, 7); got != pct {
			t.Fatalf("percent round trip %d -> %d", pct, got)
		}
	}
	if got := PercentFromCutoff(99, 0, 1); got != 100 {
		t.Errorf("PercentFromCutoff above range = %d, want 100", got)
	}
	if got := PercentFromCutoff(-99, 0, 1); got != 0 {
		t.Errorf("PercentFromCutoff below range = %d, want 0", got)
	}
	if got := PercentFromCutoff(4, 4, 4); got != DefaultCutoffPercent {
		t.Errorf("PercentFromCutoff degenerate = %d, want %d", got, DefaultCutoffPercent)
	}
}

func TestParseCutoffPercent(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{" 100 ", 100, false},
		{"101", 0, true},
		{"-1", 0, true},
		{"12.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCutoffPercent(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("ParseCutoffPercent(%q) error = %v, want ErrInvalidState", tt.in, err)
			}
			if LoadCutoffPercent(tt.in) != DefaultCutoffPercent {
				t.Errorf("LoadCutoffPercent(%q) should fall back to the default", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseCutoffPercent(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}
}
