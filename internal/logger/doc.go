// Package logger wraps zap for the buildmeta binary:
//   - a global sugared logger writing to stderr, so stdout stays clean for
//     build scripts that capture command output,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and per-logger level overrides.
//
// Services accept a context and pull the logger out of it.
package logger
