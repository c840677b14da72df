package types

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by Parse for names the universe does not declare.
var ErrUnknownType = errors.New("unknown type")

// Parse resolves a type expression such as "Decimal" or "Set<Iterable<String>>".
func (u *Universe) Parse(expr string) (*Type, error) {
	p := typeParser{src: expr}
	t, err := p.parseType(u)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q at offset %d", expr, p.src[p.pos:], p.pos)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '<' || c == '>' || c == ' ' || c == '\t' || c == ',' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) accept(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) parseType(u *Universe) (*Type, error) {
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("type %q: expected type name at offset %d", p.src, p.pos)
	}
	if !p.accept('<') {
		if name == IterableName || name == SetName {
			return nil, fmt.Errorf("type %q: %s requires an element type", p.src, name)
		}
		t, ok := u.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
		}
		return t, nil
	}
	elem, err := p.parseType(u)
	if err != nil {
		return nil, err
	}
	if !p.accept('>') {
		return nil, fmt.Errorf("type %q: missing '>' at offset %d", p.src, p.pos)
	}
	switch name {
	case IterableName:
		return u.Iterable(elem)
	case SetName:
		return u.Set(elem)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name+"<"+elem.NameKey()+">")
	}
}
