// Package scan maintains the ordered collection of media records for a
// session: files are probed and parsed one at a time, failures are recorded
// per row, and an observer is notified after every file so callers can render
// incrementally.
package scan
