// Package transcode turns one queue item into an ffmpeg invocation and reports
// how it ended.
//
// A RenderPlan is either a DiscTarget (MPEG-2 for a PAL or NTSC DVD) or a
// Standard encode (codec arguments, CRF, optional scale). BuildArgs is the only
// place argv is assembled. Runner.Invoke executes the plan through a
// process.Executor and maps the exit to an Outcome carrying the user-facing
// message.
package transcode
