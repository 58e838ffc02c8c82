// Package logger provides structured logging with configurable log levels for
// the sensei-site tool. Logs go to stderr so that exported artifacts written
// to stdout stay clean.
package logger
