package catalog

import (
	"strings"
)

// containerFrame is one open describe block. Depth is the brace depth at
// the point the declaration was seen; the block is closed once the depth
// drops back to it.
type containerFrame struct {
	name  string
	depth int
}

// pendingDecl is a describe/it/test opener whose name literal has not been
// seen yet. Declarations may span lines: `it(` on one line, the name on
// the next.
type pendingDecl struct {
	container bool
	line      int
}

var containerKeywords = map[string]bool{
	"describe": true,
	"context":  true,
}

var caseKeywords = map[string]bool{
	"it":   true,
	"test": true,
}

var modifierKeywords = map[string]bool{
	"only":       true,
	"skip":       true,
	"todo":       true,
	"failing":    true,
	"concurrent": true,
}

// ExtractCases scans source text for describe/it/test declarations and
// returns the cases in declaration order, each carrying its chain of
// enclosing container names.
//
// This is lexical matching, not parsing: strings, template literals and
// comments are skipped so lookalike tokens inside them are ignored, and
// brace counting closes containers. Dynamically computed names (it.each,
// template interpolation) are not resolved.
func ExtractCases(src string) []*TestCase {
	var (
		cases      []*TestCase
		containers []containerFrame
		pending    *pendingDecl
		depth      int
		line       = 1
	)

	runes := []rune(src)
	i := 0
	prev := rune(0) // last significant code rune

	readWord := func() string {
		start := i
		for i < len(runes) && isIdentRune(runes[i]) {
			i++
		}
		return string(runes[start:i])
	}

	skipString := func(quote rune) string {
		var b strings.Builder
		for i < len(runes) {
			r := runes[i]
			if r == '\n' {
				line++
				if quote != '`' {
					// Unterminated plain string, bail at the newline.
					i++
					return b.String()
				}
			}
			if r == '\\' && i+1 < len(runes) {
				next := runes[i+1]
				switch next {
				case quote, '\\':
					b.WriteRune(next)
				default:
					b.WriteRune(r)
					b.WriteRune(next)
				}
				i += 2
				continue
			}
			i++
			if r == quote {
				return b.String()
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == '\n':
			line++
			i++
			continue

		case r == ' ' || r == '\t' || r == '\r':
			i++
			continue

		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			continue

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			i += 2
			for i < len(runes) {
				if runes[i] == '\n' {
					line++
				}
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			continue

		case r == '\'' || r == '"' || r == '`':
			i++
			name := skipString(r)
			if pending != nil {
				names := make([]string, len(containers))
				for j, c := range containers {
					names[j] = c.name
				}
				if pending.container {
					containers = append(containers, containerFrame{name: name, depth: depth})
				} else {
					cases = append(cases, &TestCase{
						Name:       name,
						Containers: names,
						Line:       pending.line,
						Index:      len(cases),
					})
				}
				pending = nil
			}
			prev = r
			continue

		case r == '{':
			depth++
			pending = nil
			prev = r
			i++
			continue

		case r == '}':
			depth--
			for len(containers) > 0 && containers[len(containers)-1].depth >= depth {
				containers = containers[:len(containers)-1]
			}
			prev = r
			i++
			continue

		case isIdentRune(r):
			startLine := line
			word := readWord()
			if (containerKeywords[word] || caseKeywords[word]) && prev != '.' {
				if decl, ok := matchDeclaration(runes, &i, word, startLine); ok {
					pending = decl
					prev = '('
					continue
				}
			}
			prev = 'a'
			continue

		default:
			if pending != nil && r == ')' {
				// No literal name before the argument list closed.
				pending = nil
			}
			prev = r
			i++
		}
	}

	return cases
}

// matchDeclaration checks whether the keyword just read is followed by an
// optional modifier chain and an opening paren. It advances the index past
// the paren on success. `.each` is rejected: its names are computed per
// parameter row and cannot be matched statically.
func matchDeclaration(runes []rune, i *int, word string, line int) (*pendingDecl, bool) {
	j := *i
	for j < len(runes) && runes[j] == '.' {
		j++
		start := j
		for j < len(runes) && isIdentRune(runes[j]) {
			j++
		}
		if !modifierKeywords[string(runes[start:j])] {
			return nil, false
		}
	}
	for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
		j++
	}
	if j >= len(runes) || runes[j] != '(' {
		return nil, false
	}
	*i = j + 1
	return &pendingDecl{container: containerKeywords[word], line: line}, true
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
