// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by the
//     lexer, parser, checker and interpreter.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Note, Warning or Error.
//   - Code – compact numeric identifier with a stable string form
//     (LEX1xxx, SYN2xxx, SEM3xxx, RUN4xxx).
//   - Message – short human oriented text.
//   - Primary span – the source.Span pointing at the issue. For names this is
//     exactly the identifier token.
//   - Notes – optional secondary spans such as "declared here".
//
// # Emitting diagnostics
//
// Phases take a diag.Reporter. The parser and checker construct a ReportBuilder
// via ReportError / ReportWarning and chain WithNote before calling Emit.
// BagReporter aggregates into a Bag, which supports sorting and deduplication.
//
// Rendering lives in internal/diagfmt; caching and orchestration live in
// internal/driver.
package diag
