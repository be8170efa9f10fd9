package parser

// Options configures the parser. The zero value is usable.
type Options struct {
	// File is reported in syntax errors.
	File string
	// TabSize is the width a tab expands to when measuring indentation.
	TabSize int
	// DefaultTag is used for tags written only with a class or id shortcut.
	DefaultTag string
	// Engines lists the embedded engine names recognised as "name:" blocks.
	Engines []string
}

// DefaultEngines are the embedded engines recognised when Options.Engines is empty.
var DefaultEngines = []string{
	"javascript", "css", "ruby", "markdown", "textile", "rdoc", "creole",
	"wiki", "mediawiki", "org", "builder", "erb", "scss", "sass", "less", "coffee",
}

func (o Options) withDefaults() Options {
	if o.TabSize <= 0 {
		o.TabSize = 4
	}
	if o.DefaultTag == "" {
		o.DefaultTag = "div"
	}
	if len(o.Engines) == 0 {
		o.Engines = DefaultEngines
	}
	return o
}

var (
	// attribute shortcut prefix -> attribute name
	attrShortcuts = map[string]string{"#": "id", ".": "class"}
	// opening -> closing delimiters for attribute lists and code attributes
	delimiters = map[byte]byte{'(': ')', '[': ']', '{': '}'}
)
