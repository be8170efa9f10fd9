// Package diag defines the issue model shared by checks, the runner and the
// reporters.
//
// # Data model
//
// Issue is the central record. It contains:
//
//   - Linter – name of the check that produced it; empty for parse failures.
//   - File – path of the template as given to the runner.
//   - Line – 1-based line, 0 when the location is unknown.
//   - Message – human oriented text; keep it short and actionable.
//   - Severity – Warning or Error.
//
// Issues are created once and never mutated afterwards. Producers hand them to
// a Reporter (BagReporter collects them, DedupReporter drops exact repeats);
// the runner aggregates everything into a Report.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
//
// # Ordering
//
// Bag.Sort orders issues by file, line, severity (errors first), linter and
// message so output is deterministic regardless of the order in which files
// were processed.
package diag
