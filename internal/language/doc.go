// Package language resolves ISO 639 stream language tags to human-readable
// display names.
package language
