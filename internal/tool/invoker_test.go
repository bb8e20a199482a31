package tool

import (
	"testing"
	"time"
)

func TestFormatForPreset(t *testing.T) {
	tests := []struct {
		preset   string
		expected string
	}{
		{PresetBest, ""},
		{PresetMedium, "bv*[height<=720]+ba/b[height<=720]"},
		{PresetAudio, "bestaudio/best"},
		{"", ""},
		{"unknown", ""},
	}

	for _, test := range tests {
		result := FormatForPreset(test.preset)
		if result != test.expected {
			t.Errorf("FormatForPreset(%q) = %q, expected %q", test.preset, result, test.expected)
		}
	}
}

func TestCalcSpeed(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		elapsed  time.Duration
		expected string
	}{
		{"zero elapsed", 1024, 0, ""},
		{"zero bytes", 0, time.Second, ""},
		{"one MB per second", 1024 * 1024, time.Second, "1.0MB/s"},
		{"half MB per second", 1024 * 1024, 2 * time.Second, "0.5MB/s"},
		{"multi MB per second", 10 * 1024 * 1024, 2 * time.Second, "5.0MB/s"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := CalcSpeed(test.bytes, test.elapsed)
			if result != test.expected {
				t.Errorf("CalcSpeed(%d, %v) = %q, expected %q", test.bytes, test.elapsed, result, test.expected)
			}
		})
	}
}

func TestExtractOutputPath_NilResult(t *testing.T) {
	if path := extractOutputPath(nil); path != "" {
		t.Errorf("extractOutputPath(nil) = %q, expected empty", path)
	}
}

func TestNewYTDLPInvoker(t *testing.T) {
	invoker := NewYTDLPInvoker(nil)
	if invoker == nil {
		t.Fatal("NewYTDLPInvoker returned nil")
	}
	if invoker.logger == nil {
		t.Error("Invoker should fall back to the default logger")
	}
}
