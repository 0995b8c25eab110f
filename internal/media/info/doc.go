// Package info turns raw ffprobe results into media records and classifies
// resolutions into quality tiers.
package info
