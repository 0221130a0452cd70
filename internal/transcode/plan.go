package transcode

import (
	"fmt"
	"strconv"

	"vidconv/internal/presets"
)

// RenderPlan selects how a source is rendered. The only implementations are
// DiscTarget and Standard.
type RenderPlan interface {
	isRenderPlan()
}

// DiscTarget renders MPEG-2 video with AC-3 audio for a DVD profile.
type DiscTarget struct {
	Profile presets.DiscProfile
}

// Standard renders with a user-selected codec and quality. A nil Scale keeps
// the source frame size.
type Standard struct {
	CodecArgs []string
	CRF       int
	Scale     *presets.Resolution
}

func (DiscTarget) isRenderPlan() {}
func (Standard) isRenderPlan()   {}

// PlanFor derives the render plan for a run configuration. A disc profile
// overrides every other choice.
func PlanFor(cfg presets.Configuration) RenderPlan {
	if cfg.DiscTarget() {
		return DiscTarget{Profile: cfg.Disc}
	}
	plan := Standard{
		CodecArgs: append([]string(nil), cfg.Codec.Args...),
		CRF:       cfg.Quality.CRF,
	}
	if !cfg.Resolution.Original() {
		res := cfg.Resolution
		plan.Scale = &res
	}
	return plan
}

// ScaleFilter fits the source inside width x height and letterboxes the rest.
func ScaleFilter(width, height int) string {
	return fmt.Sprintf("scale=w=%d:h=%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		width, height, width, height)
}

// BuildArgs returns the ffmpeg arguments (without the binary) for one job.
func BuildArgs(source, destination string, plan RenderPlan) []string {
	args := []string{"-y", "-i", source}
	switch p := plan.(type) {
	case DiscTarget:
		width, height, rate := p.Profile.Width, p.Profile.Height, p.Profile.FrameRate
		args = append(args,
			"-target", p.Profile.Target,
			"-r", rate,
			"-vf", ScaleFilter(width, height),
			"-c:v", "mpeg2video",
			"-b:v", "6000k",
			"-maxrate", "9000k",
			"-bufsize", "1835k",
			"-c:a", "ac3",
			"-b:a", "192k",
		)
	case Standard:
		args = append(args, p.CodecArgs...)
		args = append(args, "-crf", strconv.Itoa(p.CRF), "-preset", "medium")
		if p.Scale != nil {
			args = append(args, "-vf", ScaleFilter(p.Scale.Width, p.Scale.Height))
		}
		args = append(args, "-c:a", "aac", "-b:a", "192k")
	}
	return append(args, destination)
}
