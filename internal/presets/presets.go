package presets

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownPreset reports a selection value that matches no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Codec maps a user-facing codec choice to encoder arguments.
type Codec struct {
	ID    string
	Label string
	Args  []string
}

// Quality maps a quality tier to a constant rate factor.
type Quality struct {
	ID    string
	Label string
	CRF   int
}

// Resolution is a target frame size. Original reports true when the source
// size is kept.
type Resolution struct {
	ID     string
	Label  string
	Width  int
	Height int
}

// Original reports whether the resolution keeps the source frame size.
func (r Resolution) Original() bool {
	return r.Width == 0 || r.Height == 0
}

// DiscProfile describes a disc-compatible output target.
type DiscProfile struct {
	ID        string
	Label     string
	Target    string
	FrameRate string
	Width     int
	Height    int
}

// Enabled reports whether the profile selects a disc target.
func (p DiscProfile) Enabled() bool {
	return p.Target != ""
}

// AuthoringFormat returns the dvdauthor video format for the profile.
// Anything that is not PAL authors as NTSC.
func (p DiscProfile) AuthoringFormat() string {
	if p.ID == "pal" {
		return "pal"
	}
	return "ntsc"
}

// Formats lists the supported output containers.
var Formats = []string{"mp4", "mkv", "avi", "mov", "webm", "flv", "wmv", "m4v", "vob"}

// VideoExtensions lists the source file extensions accepted into the queue.
var VideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm", ".flv", ".wmv", ".m4v", ".vob"}

// DiscContainer is the container produced by every disc-target run.
const DiscContainer = "mpg"

var Codecs = []Codec{
	{ID: "h264", Label: "H.264 (AVC)", Args: []string{"-c:v", "libx264"}},
	{ID: "h265", Label: "H.265 (HEVC)", Args: []string{"-c:v", "libx265"}},
	{ID: "vp9", Label: "VP9", Args: []string{"-c:v", "libvpx-vp9"}},
	{ID: "av1", Label: "AV1", Args: []string{"-c:v", "libaom-av1"}},
	{ID: "mpeg2", Label: "MPEG-2", Args: []string{"-c:v", "mpeg2video"}},
	{ID: "mpeg4", Label: "MPEG-4 Part 2", Args: []string{"-c:v", "mpeg4"}},
	{ID: "vp8", Label: "VP8", Args: []string{"-c:v", "libvpx"}},
	{ID: "theora", Label: "Theora", Args: []string{"-c:v", "libtheora"}},
	{ID: "prores", Label: "ProRes", Args: []string{"-c:v", "prores_ks"}},
	{ID: "dnxhd", Label: "DNxHD", Args: []string{"-c:v", "dnxhd"}},
	{ID: "huffyuv", Label: "Huffyuv (lossless)", Args: []string{"-c:v", "huffyuv"}},
}

var Qualities = []Quality{
	{ID: "high", Label: "Alta (CRF 18)", CRF: 18},
	{ID: "medium", Label: "Media (CRF 23)", CRF: 23},
	{ID: "low", Label: "Baixa (CRF 28)", CRF: 28},
}

var Resolutions = []Resolution{
	{ID: "original", Label: "Original"},
	{ID: "1080p", Label: "1080p (1920x1080)", Width: 1920, Height: 1080},
	{ID: "720p", Label: "720p (1280x720)", Width: 1280, Height: 720},
	{ID: "480p", Label: "480p (854x480)", Width: 854, Height: 480},
	{ID: "380p", Label: "380p (640x380)", Width: 640, Height: 380},
}

var DiscProfiles = []DiscProfile{
	{ID: "off", Label: "Desativado"},
	{ID: "pal", Label: "DVD PAL (720x576, 25fps)", Target: "pal-dvd", FrameRate: "25", Width: 720, Height: 576},
	{ID: "ntsc", Label: "DVD NTSC (720x480, 29.97fps)", Target: "ntsc-dvd", FrameRate: "29.97", Width: 720, Height: 480},
}

// fold builds a fresh Caser per call; Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

func matches(value, id, label string) bool {
	key := fold(strings.TrimSpace(value))
	return key == fold(id) || key == fold(label)
}

func unknown(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownPreset, kind, value)
}

// LookupFormat returns the canonical container name.
func LookupFormat(value string) (string, error) {
	for _, format := range Formats {
		if matches(value, format, "."+format) {
			return format, nil
		}
	}
	return "", unknown("format", value)
}

// LookupCodec finds a codec by id or label.
func LookupCodec(value string) (Codec, error) {
	for _, codec := range Codecs {
		if matches(value, codec.ID, codec.Label) {
			return codec, nil
		}
	}
	return Codec{}, unknown("codec", value)
}

// LookupQuality finds a quality tier by id or label.
func LookupQuality(value string) (Quality, error) {
	for _, quality := range Qualities {
		if matches(value, quality.ID, quality.Label) {
			return quality, nil
		}
	}
	return Quality{}, unknown("quality", value)
}

// LookupResolution finds a resolution by id or label.
func LookupResolution(value string) (Resolution, error) {
	for _, res := range Resolutions {
		if matches(value, res.ID, res.Label) {
			return res, nil
		}
	}
	return Resolution{}, unknown("resolution", value)
}

// LookupDiscProfile finds a disc profile by id or label.
func LookupDiscProfile(value string) (DiscProfile, error) {
	for _, profile := range DiscProfiles {
		if matches(value, profile.ID, profile.Label) {
			return profile, nil
		}
	}
	return DiscProfile{}, unknown("disc profile", value)
}

// IsVideoFile reports whether path carries a supported video extension.
func IsVideoFile(path string) bool {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return false
	}
	ext := fold(path[dot:])
	for _, candidate := range VideoExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
