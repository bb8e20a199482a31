package platform

import (
	"testing"
	"time"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", true},
		{"https://www.youtube.com/watch?v=abc&list=PLabc123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsPlaylistURL(test.url)
		if result != test.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", test.url, result, test.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", "PLabc123"},
		{"https://www.youtube.com/watch?v=abc&list=PLdef456&index=2", "PLdef456"},
		{"https://www.youtube.com/watch?v=abc", ""},
		{"list=", ""},
	}

	for _, test := range tests {
		result := extractPlaylistID(test.url)
		if result != test.expected {
			t.Errorf("extractPlaylistID(%q) = %q, expected %q", test.url, result, test.expected)
		}
	}
}

func TestNewPlaylistExpander(t *testing.T) {
	expander := NewPlaylistExpander()

	if expander.timeout != DefaultExpandTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultExpandTimeout, expander.timeout)
	}

	expander.SetTimeout(5 * time.Second)
	if expander.timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s after SetTimeout, got %v", expander.timeout)
	}
}
