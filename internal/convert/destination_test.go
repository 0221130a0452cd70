package convert

import (
	"path/filepath"
	"testing"
)

func TestDestination(t *testing.T) {
	tests := []struct {
		source, outputDir, format, want string
	}{
		{"/videos/trip.mov", "", "mp4", "/videos/trip_convertido.mp4"},
		{"/videos/trip.mov", "/out", "mkv", "/out/trip_convertido.mkv"},
		{"/videos/archive.tar.mkv", "", "mpg", "/videos/archive.tar_convertido.mpg"},
		{"/videos/noext", "  ", "webm", "/videos/noext_convertido.webm"},
		{"/videos/.mp4", "", "mp4", "/videos/.mp4_convertido.mp4"},
		{"/videos/.hidden.mkv", "/out", "mp4", "/out/.hidden_convertido.mp4"},
	}
	for _, tt := range tests {
		got := Destination(tt.source, tt.outputDir, tt.format)
		if got != filepath.FromSlash(tt.want) {
			t.Fatalf("Destination(%q, %q, %q) = %q, want %q", tt.source, tt.outputDir, tt.format, got, tt.want)
		}
		if again := Destination(tt.source, tt.outputDir, tt.format); again != got {
			t.Fatalf("Destination is not deterministic: %q vs %q", got, again)
		}
	}
}
