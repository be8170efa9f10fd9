package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"liquidlint/internal/codelint"
	"liquidlint/internal/config"
	"liquidlint/internal/extract"
	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/source"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Print the Ruby source extracted from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().Bool("map", false, "prefix every line with generated:template line numbers")
	cmd.Flags().Bool("steps", false, "print the tree after every lowering pass instead")
	cmd.Flags().String("prefix", extract.DefaultPrefix, "placeholder statement prefix")
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the annotated parse tree of a template",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().Bool("lines", false, "print one node per line with its source line")
	return cmd
}

// readDocument parses the named template or stdin.
func readDocument(cmd *cobra.Command, args []string) (*lint.Document, error) {
	fileSet := source.NewFileSet()
	var (
		id  source.FileID
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		id, err = fileSet.LoadReader("-", cmd.InOrStdin())
	} else {
		id, err = fileSet.Load(args[0])
	}
	if err != nil {
		return nil, err
	}
	file := fileSet.Get(id)
	doc, err := lint.NewDocumentFromFile(file, lint.DocumentOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	return doc, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	showMap, _ := cmd.Flags().GetBool("map")
	steps, _ := cmd.Flags().GetBool("steps")
	prefix, _ := cmd.Flags().GetString("prefix")

	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if steps {
		for _, st := range extract.LowerSteps(doc.Raw) {
			fmt.Fprintf(out, "== %s\n%s\n", st.Name, sexp.Convert(st.Tree))
		}
		return nil
	}

	src := extract.New(extract.Options{Prefix: prefix}).Extract(doc.Raw)
	for i, line := range src.Lines() {
		if showMap {
			fmt.Fprintf(out, "%4d:%-4d| ", i+1, src.LineMap[i+1])
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	lines, _ := cmd.Flags().GetBool("lines")
	doc, err := readDocument(cmd, args)
	if err != nil {
		return err
	}
	if !lines {
		cmd.Println(doc.Tree.String())
		return nil
	}
	dumpTree(cmd.OutOrStdout(), doc.Tree, 0)
	return nil
}

// dumpTree prints nodes whose children are all atoms on one line, others
// expanded.
func dumpTree(w io.Writer, n *sexp.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	flat := true
	for _, c := range n.Elements() {
		if _, ok := c.(*sexp.Node); ok {
			flat = false
			break
		}
	}
	if flat {
		fmt.Fprintf(w, "%4d %s%s\n", n.Line(), indent, n)
		return
	}
	fmt.Fprintf(w, "%4d %s[%s\n", n.Line(), indent, n.At(0))
	for _, c := range n.Children() {
		if child, ok := c.(*sexp.Node); ok {
			dumpTree(w, child, depth+1)
			continue
		}
		fmt.Fprintf(w, "%4d %s  %s\n", c.Line(), indent, c)
	}
}

// codeEngineInfo describes the configured code linter for --verbose-version.
func codeEngineInfo(ctx context.Context) []string {
	engine := codelint.EngineTreeSitter
	if cfg, err := loadConfig(""); err == nil {
		engine = cfg.ForLinter("CodeLint").String("engine", engine)
	}
	lines := []string{"code engine: " + engine}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rubocop := codelint.NewRubocop(codelint.Options{RubocopConfig: os.Getenv(config.EnvRubocopConfig)})
	if v, err := rubocop.Version(ctx); err == nil {
		lines = append(lines, "rubocop: "+v)
	} else {
		lines = append(lines, "rubocop: not available")
	}
	return lines
}
