// Package themes is a read-only catalog of terminal themes kept on disk as
// <root>/<terminal kind>/<theme name>.<ext>.
package themes
