package ui

import "testing"

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"bytes", 512, "512 B"},
		{"kilobytes", 2048, "2.0 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GB"},
		{"fractional", 1536, "1.5 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatFileSize(tt.bytes); got != tt.want {
				t.Errorf("formatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"empty", "", false},
		{"url", "https://example.com/video", false},
		{"unix path", "/home/user/Downloads/video.mp4", true},
		{"windows path", `C:\Users\user\Downloads\video.mp4`, true},
		{"bare name", "video.mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFilePath(tt.path); got != tt.want {
				t.Errorf("isFilePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocalizationFallback(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeyStop); got != "Stop" {
		t.Errorf("GetText(KeyStop) = %q, want %q", got, "Stop")
	}

	l.SetLanguage("ru")
	if got := l.GetText(KeyStop); got != "Стоп" {
		t.Errorf("GetText(KeyStop) in ru = %q, want %q", got, "Стоп")
	}

	// Unknown languages are ignored
	l.SetLanguage("xx")
	if got := l.GetCurrentLanguage(); got != "ru" {
		t.Errorf("GetCurrentLanguage() = %q, want %q", got, "ru")
	}

	// Unknown keys fall back to the key itself
	if got := l.GetText("nonexistent_key"); got != "nonexistent_key" {
		t.Errorf("GetText(unknown) = %q, want key itself", got)
	}
}

func TestFirstLogLine(t *testing.T) {
	if got := firstLogLine("one\ntwo"); got != "one" {
		t.Errorf("firstLogLine = %q, want %q", got, "one")
	}
	if got := firstLogLine("single"); got != "single" {
		t.Errorf("firstLogLine = %q, want %q", got, "single")
	}
}
