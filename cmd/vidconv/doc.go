// Command vidconv manages a persistent queue of video files, converts it with
// ffmpeg, and authors DVD VIDEO_TS folders from disc-target conversions.
//
//	vidconv queue add movie.mkv trailer.mp4
//	vidconv queue watch ~/Downloads --existing
//	vidconv convert --codec h264 --quality high
//	vidconv convert --disc pal && vidconv disc create
//
// Conversion runs in the foreground; Ctrl-C cancels the current item and
// stops the run. Only one conversion may run per state directory.
package main
