package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
)

// renamed maps host attribute names onto the names the renderer expects.
var renamed = map[string]string{
	"background": "background-color",
}

// ParseInline parses a declaration list such as a style attribute value.
// Malformed declarations are skipped; parsing never fails.
func ParseInline(s string) Declarations {
	var out Declarations
	p := cssparse.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case cssparse.ErrorGrammar:
			return out
		case cssparse.DeclarationGrammar, cssparse.CustomPropertyGrammar:
			name := strings.ToLower(strings.TrimSpace(string(data)))
			value := joinTokens(p.Values())
			if name == "" || value == "" {
				continue
			}
			out.Set(name, value)
		}
	}
}

// ParseAttributes parses attribute lines as exported by a design tool, one
// declaration per line, e.g. "border: 1px solid #979797;". Comment lines are
// ignored and "background" is renamed to "background-color".
func ParseAttributes(lines []string) Declarations {
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(line)
		if !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, "*/") {
			b.WriteByte(';')
		}
		b.WriteByte('\n')
	}

	out := ParseInline(b.String())
	for i := range out {
		if to, ok := renamed[out[i].Name]; ok {
			out[i].Name = to
		}
	}
	return out
}

func joinTokens(tokens []cssparse.Token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == cssparse.WhitespaceToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(t.Data)
	}
	return b.String()
}

// BorderWidth returns the width in whole pixels encoded in the first token of
// a border shorthand ("2px solid #000" -> 2). Unparseable values yield 0.
func BorderWidth(value string) int {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0
	}
	num := strings.TrimRightFunc(fields[0], func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f + 0.5)
}
