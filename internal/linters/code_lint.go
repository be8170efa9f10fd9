package linters

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"liquidlint/internal/codelint"
	"liquidlint/internal/config"
	"liquidlint/internal/diag"
	"liquidlint/internal/extract"
	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

const extractCacheSize = 512

var (
	extractOnce  sync.Once
	extractCache *extract.Cache
)

func sharedExtractCache() *extract.Cache {
	extractOnce.Do(func() {
		c, err := extract.NewCache(extractCacheSize, extract.New(extract.Options{}))
		if err != nil {
			panic(err)
		}
		extractCache = c
	})
	return extractCache
}

// CodeLint lowers the template to Ruby and runs a code linter over it,
// reporting offenses on the template lines they came from.
type CodeLint struct {
	*lint.Check
	engine  codelint.Engine
	initErr error
	ignored []string
}

func init() {
	lint.Register(lint.Descriptor{
		Name:        "CodeLint",
		Description: "Run a Ruby linter over the code embedded in the template",
		New:         NewCodeLint,
	})
}

// NewCodeLint builds the check with the engine named by the "engine" key.
func NewCodeLint(cfg lint.ConfigView) lint.Linter {
	name := codelint.EngineTreeSitter
	var ignored []string
	if cfg != nil {
		name = cfg.String("engine", name)
		ignored = cfg.Strings("ignored_cops")
	}
	engine, err := codelint.New(name, codelint.Options{
		RubocopPath:   cfgString(cfg, "rubocop_path"),
		RubocopConfig: os.Getenv(config.EnvRubocopConfig),
	})
	c := &CodeLint{Check: lint.NewCheck("CodeLint", cfg), engine: engine, initErr: err, ignored: ignored}
	c.Rules().OnStart(c.run)
	return c
}

// NewCodeLintWithEngine builds the check around an explicit engine.
func NewCodeLintWithEngine(cfg lint.ConfigView, engine codelint.Engine) *CodeLint {
	c := NewCodeLint(cfg).(*CodeLint)
	c.engine, c.initErr = engine, nil
	return c
}

func (c *CodeLint) run(*sexp.Node) visitor.Result {
	if c.initErr != nil {
		c.ReportLineSeverity(0, diag.SevError, c.initErr.Error())
		return visitor.Stop
	}
	doc := c.Document()
	src := sharedExtractCache().Extract(sha256.Sum256([]byte(doc.Source)), doc.Raw)
	if src.Text == "" {
		return visitor.Stop
	}
	offenses, err := c.engine.Lint(c.Context(), doc.File, src.Text)
	if err != nil {
		c.ReportLineSeverity(0, diag.SevError, fmt.Sprintf("%s: %v", c.engine.Name(), err))
		return visitor.Stop
	}
	offenses = codelint.Ignore(codelint.Remap(offenses, src.LineMap), c.ignored)
	for _, o := range offenses {
		c.ReportLine(o.Line, fmt.Sprintf("%s: %s", o.Cop, o.Message))
	}
	return visitor.Stop
}

func cfgString(cfg lint.ConfigView, key string) string {
	if cfg == nil {
		return ""
	}
	return cfg.String(key, "")
}
