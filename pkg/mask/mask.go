// Package mask converts between raw values and their masked display form.
//
// A pattern is a sequence of placeholder and literal tokens. The placeholders
// are 9 (digit), a (letter) and * (letter or digit); a backslash turns the
// next character into a literal. Every function in this package is total:
// malformed input is filtered or truncated, never rejected.
package mask

import (
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenDigit
	tokenLetter
	tokenAlnum
)

type token struct {
	kind    tokenKind
	literal rune
}

func (t token) accepts(r rune) bool {
	switch t.kind {
	case tokenDigit:
		return r >= '0' && r <= '9'
	case tokenLetter:
		return unicode.IsLetter(r)
	case tokenAlnum:
		return unicode.IsLetter(r) || (r >= '0' && r <= '9')
	default:
		return false
	}
}

// Pattern is a parsed mask. The zero value has no placeholders.
type Pattern struct {
	source   string
	tokens   []token
	capacity int
}

// Edit is the outcome of a single keystroke on a masked input.
type Edit struct {
	Raw       string
	Displayed string
}

// Parse builds a Pattern from its textual form, e.g. "(99) 99999-9999".
func Parse(source string) Pattern {
	p := Pattern{source: source}
	escaped := false
	for _, r := range source {
		if escaped {
			p.tokens = append(p.tokens, token{kind: tokenLiteral, literal: r})
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '9':
			p.tokens = append(p.tokens, token{kind: tokenDigit})
			p.capacity++
		case 'a':
			p.tokens = append(p.tokens, token{kind: tokenLetter})
			p.capacity++
		case '*':
			p.tokens = append(p.tokens, token{kind: tokenAlnum})
			p.capacity++
		default:
			p.tokens = append(p.tokens, token{kind: tokenLiteral, literal: r})
		}
	}
	if escaped {
		p.tokens = append(p.tokens, token{kind: tokenLiteral, literal: '\\'})
	}
	return p
}

// String returns the pattern source.
func (p Pattern) String() string {
	return p.source
}

// Capacity reports how many raw characters the pattern can hold.
func (p Pattern) Capacity() int {
	return p.capacity
}

// Apply interleaves raw characters with the pattern's literals. Characters a
// placeholder rejects are discarded, input beyond capacity is dropped and the
// output stops with the last raw character, so it is never padded.
func (p Pattern) Apply(raw string) string {
	if raw == "" || p.capacity == 0 {
		return ""
	}
	in := []rune(raw)
	pos := 0

	var (
		b       strings.Builder
		pending []rune
	)
	for _, tok := range p.tokens {
		if tok.kind == tokenLiteral {
			pending = append(pending, tok.literal)
			continue
		}
		for pos < len(in) && !tok.accepts(in[pos]) {
			pos++
		}
		if pos >= len(in) {
			break
		}
		b.WriteString(string(pending))
		pending = pending[:0]
		b.WriteRune(in[pos])
		pos++
	}
	return b.String()
}

// Extract recovers the raw value from a displayed or freshly typed string.
// Literals found at literal slots are consumed, missing literals are skipped
// and characters no placeholder accepts are dropped.
func (p Pattern) Extract(displayed string) string {
	if displayed == "" || p.capacity == 0 {
		return ""
	}
	var b strings.Builder
	cursor := 0
	for _, r := range displayed {
		for cursor < len(p.tokens) && p.tokens[cursor].kind == tokenLiteral && p.tokens[cursor].literal != r {
			cursor++
		}
		if cursor >= len(p.tokens) {
			break
		}
		tok := p.tokens[cursor]
		if tok.kind == tokenLiteral {
			cursor++
			continue
		}
		if tok.accepts(r) {
			b.WriteRune(r)
			cursor++
		}
	}
	return b.String()
}

// Normalize returns the raw value the pattern would keep from raw: accepted
// characters only, truncated to capacity.
func (p Pattern) Normalize(raw string) string {
	return p.Extract(p.Apply(raw))
}

// OnEdit recomputes both representations from an edited display value. The
// raw value is extracted from input and re-applied, so the result is the same
// whether input is a single keystroke or a whole replacement value.
func (p Pattern) OnEdit(input string) Edit {
	displayed := p.Apply(p.Extract(input))
	return Edit{
		Raw:       p.Extract(displayed),
		Displayed: displayed,
	}
}
