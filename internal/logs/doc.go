// Package logs reads the discshelf log file for the CLI.
//
// Last returns the final lines of the file with bounded memory, From reads
// whatever was appended after an offset, and Follow polls for new lines
// until its context ends. A log file that is truncated or replaced while
// being followed is read again from the start.
package logs
