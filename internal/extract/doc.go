// Package extract lowers a parsed template into pseudo Ruby source.
//
// Lowering runs a fixed pipeline of passes over the raw parser tree (embedded
// engines, interpolation, splats, implicit "do", block grouping, control and
// attribute processing, flattening, static merging). The lowered tree is then
// annotated with lines and walked by an Extractor that emits one generated
// line per code fragment or literal-output placeholder, together with a map
// from generated lines back to template lines.
//
// Block terminators are synthetic: control chains and block-opening output
// are wrapped in [:block, [:multi, ...]] and the closing "end" is attributed
// to the line of the opening statement.
package extract
