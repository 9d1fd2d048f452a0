// Package logger records what a shell session runs as newline delimited JSON
// events and summarizes those logs.
package logger
