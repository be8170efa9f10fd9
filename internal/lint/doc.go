// Package lint wires parsed templates to checks.
//
// A Document is parsed, converted and line-annotated once; checks then walk
// it read-only. Each check embeds a *Check, which owns a visitor.Rules set
// and a per-run issue accumulator. Checks are created through the
// process-wide Registry and picked per file by a Selector.
package lint
