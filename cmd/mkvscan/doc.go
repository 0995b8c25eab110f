// Command mkvscan probes video files with ffprobe and reports resolution,
// frame rate, codec, track languages, and a quality tier per file.
package main
