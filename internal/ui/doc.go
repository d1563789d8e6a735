// Package ui provides theme and color support for the console report.
// It defines color schemes and ANSI escape code accessors shared by the CLI
// presentation layer and the error handler.
package ui
