package attrs

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Attribute templates are display strings with embedded placeholders, e.g.
// "{{NAME}} = {{CMP::VALUE}}". Placeholders are substituted through a
// Provider; unresolved placeholders expand to the empty string.

var templateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Open", Pattern: `\{\{`},
	{Name: "Close", Pattern: `\}\}`},
	{Name: "Sep", Pattern: `::`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Text", Pattern: `[^{}:A-Za-z_]+|[{}:]`},
})

// Template is a parsed attribute template.
type Template struct {
	Parts []templatePart `parser:"@@*"`
}

type templatePart struct {
	Placeholder *placeholder `parser:"@@"`
	Text        string       `parser:"| @(Ident | Text | Sep)"`
}

type placeholder struct {
	First  string  `parser:"Open @Ident"`
	Second *string `parser:"(Sep @Ident)? Close"`
}

// Namespace returns the placeholder's namespace ("" when unqualified).
func (p placeholder) namespace() string {
	if p.Second == nil {
		return ""
	}
	return p.First
}

func (p placeholder) key() string {
	if p.Second == nil {
		return p.First
	}
	return *p.Second
}

var templateParser = participle.MustBuild[Template](
	participle.Lexer(templateLexer),
)

// ParseTemplate parses an attribute template string.
func ParseTemplate(input string) (*Template, error) {
	tpl, err := templateParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("invalid attribute template: %w", err)
	}
	return tpl, nil
}

// Substitute expands the template against the given provider. Placeholders
// are resolved with passToParents=true; unresolved ones become "".
func (t *Template) Substitute(p Provider) string {
	var b strings.Builder
	for _, part := range t.Parts {
		if part.Placeholder == nil {
			b.WriteString(part.Text)
			continue
		}
		value, ok := p.AttributeValue(part.Placeholder.namespace(), part.Placeholder.key(), true)
		if ok {
			b.WriteString(value)
		}
	}
	return b.String()
}

// Placeholders lists the (namespace, key) pairs referenced by the template.
func (t *Template) Placeholders() []Entry {
	var refs []Entry
	for _, part := range t.Parts {
		if part.Placeholder != nil {
			refs = append(refs, Entry{
				Namespace: part.Placeholder.namespace(),
				Key:       part.Placeholder.key(),
			})
		}
	}
	return refs
}

// Expand parses and substitutes a template in one step.
func Expand(input string, p Provider) (string, error) {
	tpl, err := ParseTemplate(input)
	if err != nil {
		return "", err
	}
	return tpl.Substitute(p), nil
}
