// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - a file sink for processes whose terminal is taken by a UI,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Phase machines and services accept a context and extract the logger from
// it, so every log line carries the node and phase it came from.
package logger
