// Package format renders parsed dotenv documents in the output formats
// supported on the command line and compares documents line by line.
package format
