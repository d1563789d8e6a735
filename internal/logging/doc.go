// Package logging provides the structured diagnostic logger of the
// integration driver. Components log through the Logger interface with typed
// fields; the zerolog backend writes one JSON object per entry.
package logging
