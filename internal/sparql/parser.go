package sparql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ontokit/owlq/internal/rdf"
)

// Form is the syntactic form of a query, used by the format resolver to
// pick a default serialization before any evaluation happens.
type Form string

const (
	FormSelect    Form = "SELECT"
	FormAsk       Form = "ASK"
	FormConstruct Form = "CONSTRUCT"
	FormDescribe  Form = "DESCRIBE"
	FormUnknown   Form = ""
)

// DetectForm scans past the prologue and reports the query form. It is a
// heuristic over tokens, not a full parse: malformed queries still get a
// best-effort answer (FormUnknown), and the caller decides what that
// means.
func DetectForm(text string) Form {
	toks, err := lex(text)
	if err != nil {
		return FormUnknown
	}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.isKeyword("PREFIX") || t.isKeyword("BASE") {
			continue
		}
		if t.kind != tokWord {
			continue
		}
		switch {
		case t.isKeyword("SELECT"):
			return FormSelect
		case t.isKeyword("ASK"):
			return FormAsk
		case t.isKeyword("CONSTRUCT"):
			return FormConstruct
		case t.isKeyword("DESCRIBE"):
			return FormDescribe
		}
	}
	return FormUnknown
}

// Parse parses a SPARQL query. The supplied prefix map seeds prefixed-name
// resolution; PREFIX directives in the query extend a private copy and win
// on collision.
func Parse(text string, prefixes rdf.PrefixMap) (Query, error) {
	p, err := newParser(text, prefixes)
	if err != nil {
		return nil, err
	}
	if err := p.prologue(); err != nil {
		return nil, err
	}
	var q Query
	switch {
	case p.cur().isKeyword("SELECT"):
		q, err = p.selectQuery()
	case p.cur().isKeyword("ASK"):
		q, err = p.askQuery()
	case p.cur().isKeyword("CONSTRUCT"):
		q, err = p.constructQuery()
	case p.cur().isKeyword("DESCRIBE"):
		q, err = p.describeQuery()
	default:
		return nil, p.errf("expected SELECT, ASK, CONSTRUCT, or DESCRIBE, got %s", p.cur().describe())
	}
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, p.errf("unexpected trailing %s", p.cur().describe())
	}
	return q, nil
}

type parser struct {
	toks     []token
	pos      int
	prefixes rdf.PrefixMap
	base     string
}

func newParser(text string, prefixes rdf.PrefixMap) (*parser, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	pm := rdf.DefaultPrefixes()
	for label, ns := range prefixes {
		pm[label] = ns
	}
	return &parser{toks: toks, prefixes: pm}, nil
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Line: p.cur().line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expectPunct(punct string) error {
	if !p.cur().isPunct(punct) {
		return p.errf("expected %q, got %s", punct, p.cur().describe())
	}
	p.pos++
	return nil
}

// prologue consumes PREFIX and BASE declarations.
func (p *parser) prologue() error {
	for {
		switch {
		case p.cur().isKeyword("PREFIX"):
			p.pos++
			name := p.next()
			if name.kind != tokPName || !strings.HasSuffix(name.text, ":") {
				return p.errf("expected prefix label ending in ':'")
			}
			iri := p.next()
			if iri.kind != tokIRIRef {
				return p.errf("expected namespace IRI after PREFIX")
			}
			p.prefixes[strings.TrimSuffix(name.text, ":")] = iri.text
		case p.cur().isKeyword("BASE"):
			p.pos++
			iri := p.next()
			if iri.kind != tokIRIRef {
				return p.errf("expected IRI after BASE")
			}
			p.base = iri.text
		default:
			return nil
		}
	}
}

func (p *parser) selectQuery() (Query, error) {
	p.pos++ // SELECT
	q := &SelectQuery{}
	if p.cur().isKeyword("DISTINCT") {
		q.Distinct = true
		p.pos++
	}
	if p.cur().isPunct("*") {
		p.pos++
	} else {
		for p.cur().kind == tokVar {
			q.Vars = append(q.Vars, p.next().text)
		}
		if len(q.Vars) == 0 {
			return nil, p.errf("expected projection variables or '*'")
		}
	}
	if p.cur().isKeyword("WHERE") {
		p.pos++
	}
	where, err := p.groupPattern()
	if err != nil {
		return nil, err
	}
	q.Where = where
	if p.cur().isKeyword("LIMIT") {
		p.pos++
		n := p.next()
		if n.kind != tokNumber {
			return nil, p.errf("expected number after LIMIT")
		}
		limit, err := strconv.Atoi(n.text)
		if err != nil || limit < 0 {
			return nil, p.errf("invalid LIMIT %q", n.text)
		}
		q.Limit = limit
	}
	return q, nil
}

func (p *parser) askQuery() (Query, error) {
	p.pos++ // ASK
	if p.cur().isKeyword("WHERE") {
		p.pos++
	}
	where, err := p.groupPattern()
	if err != nil {
		return nil, err
	}
	return &AskQuery{Where: where}, nil
}

func (p *parser) constructQuery() (Query, error) {
	p.pos++ // CONSTRUCT
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	template, err := p.triplesBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	if !p.cur().isKeyword("WHERE") {
		return nil, p.errf("expected WHERE after CONSTRUCT template")
	}
	p.pos++
	where, err := p.groupPattern()
	if err != nil {
		return nil, err
	}
	return &ConstructQuery{Template: template, Where: where}, nil
}

func (p *parser) describeQuery() (Query, error) {
	p.pos++ // DESCRIBE
	q := &DescribeQuery{}
	for {
		switch p.cur().kind {
		case tokVar:
			q.Targets = append(q.Targets, Var{Name: p.next().text})
			continue
		case tokIRIRef, tokPName:
			iri, err := p.iri()
			if err != nil {
				return nil, err
			}
			q.Targets = append(q.Targets, TermPattern{Term: rdf.IRI{Value: iri}})
			continue
		}
		break
	}
	if len(q.Targets) == 0 {
		return nil, p.errf("DESCRIBE needs at least one IRI or variable")
	}
	if p.cur().isKeyword("WHERE") {
		p.pos++
		where, err := p.groupPattern()
		if err != nil {
			return nil, err
		}
		q.Where = where
	}
	return q, nil
}

// groupPattern parses "{ ... }": triple patterns and GRAPH blocks.
func (p *parser) groupPattern() (*GroupPattern, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	group := &GroupPattern{}
	for {
		switch {
		case p.cur().isPunct("}"):
			p.pos++
			return group, nil
		case p.cur().kind == tokEOF:
			return nil, p.errf("unterminated group pattern")
		case p.cur().isKeyword("GRAPH"):
			p.pos++
			name, err := p.varOrIRI()
			if err != nil {
				return nil, err
			}
			inner, err := p.groupPattern()
			if err != nil {
				return nil, err
			}
			group.Elements = append(group.Elements, &GraphGroup{Name: name, Group: inner})
			// An optional '.' may follow a GRAPH block.
			if p.cur().isPunct(".") {
				p.pos++
			}
		case p.cur().isKeyword("FILTER") || p.cur().isKeyword("OPTIONAL") || p.cur().isKeyword("UNION") || p.cur().isKeyword("MINUS"):
			return nil, p.errf("%s is not supported", strings.ToUpper(p.cur().text))
		default:
			patterns, err := p.triplesSameSubject()
			if err != nil {
				return nil, err
			}
			for _, tp := range patterns {
				group.Elements = append(group.Elements, tp)
			}
			if p.cur().isPunct(".") {
				p.pos++
			}
		}
	}
}

// triplesBlock parses dot-separated triple patterns until '}' without
// consuming the brace. Used for CONSTRUCT templates and update quads.
func (p *parser) triplesBlock() ([]TriplePattern, error) {
	var out []TriplePattern
	for {
		if p.cur().isPunct("}") || p.cur().kind == tokEOF {
			return out, nil
		}
		patterns, err := p.triplesSameSubject()
		if err != nil {
			return nil, err
		}
		out = append(out, patterns...)
		if p.cur().isPunct(".") {
			p.pos++
		}
	}
}

// triplesSameSubject parses one subject with its predicate-object list
// (';' and ',' forms included).
func (p *parser) triplesSameSubject() ([]TriplePattern, error) {
	subject, err := p.varOrTerm()
	if err != nil {
		return nil, err
	}
	var out []TriplePattern
	for {
		pred, err := p.verb()
		if err != nil {
			return nil, err
		}
		for {
			object, err := p.varOrTerm()
			if err != nil {
				return nil, err
			}
			out = append(out, TriplePattern{S: subject, P: pred, O: object})
			if p.cur().isPunct(",") {
				p.pos++
				continue
			}
			break
		}
		if p.cur().isPunct(";") {
			p.pos++
			// Trailing ';' before '.' or '}' is legal.
			if p.cur().isPunct(".") || p.cur().isPunct("}") {
				return out, nil
			}
			continue
		}
		return out, nil
	}
}

// verb parses a predicate position: a variable, an IRI, or the 'a'
// shorthand.
func (p *parser) verb() (PatternTerm, error) {
	t := p.cur()
	switch {
	case t.kind == tokVar:
		p.pos++
		return Var{Name: t.text}, nil
	case t.kind == tokWord && t.text == "a":
		p.pos++
		return TermPattern{Term: rdf.IRI{Value: rdf.RDFType}}, nil
	case t.kind == tokIRIRef || t.kind == tokPName:
		iri, err := p.iri()
		if err != nil {
			return nil, err
		}
		return TermPattern{Term: rdf.IRI{Value: iri}}, nil
	default:
		return nil, p.errf("expected predicate, got %s", t.describe())
	}
}

// varOrTerm parses a subject or object position.
func (p *parser) varOrTerm() (PatternTerm, error) {
	t := p.cur()
	switch t.kind {
	case tokVar:
		p.pos++
		return Var{Name: t.text}, nil
	case tokIRIRef, tokPName:
		iri, err := p.iri()
		if err != nil {
			return nil, err
		}
		return TermPattern{Term: rdf.IRI{Value: iri}}, nil
	case tokBlank:
		p.pos++
		return TermPattern{Term: rdf.BlankNode{ID: t.text}}, nil
	case tokString:
		p.pos++
		switch {
		case p.cur().kind == tokLangTag:
			return TermPattern{Term: rdf.NewLang(t.text, p.next().text)}, nil
		case p.cur().kind == tokDatatypeSep:
			p.pos++
			dt, err := p.iri()
			if err != nil {
				return nil, err
			}
			return TermPattern{Term: rdf.NewTyped(t.text, dt)}, nil
		default:
			return TermPattern{Term: rdf.NewString(t.text)}, nil
		}
	case tokNumber:
		p.pos++
		if strings.Contains(t.text, ".") {
			return TermPattern{Term: rdf.NewTyped(t.text, rdf.XSDDecimal)}, nil
		}
		return TermPattern{Term: rdf.NewTyped(t.text, rdf.XSDInteger)}, nil
	case tokWord:
		if t.isKeyword("true") || t.isKeyword("false") {
			p.pos++
			return TermPattern{Term: rdf.NewTyped(strings.ToLower(t.text), rdf.XSDBoolean)}, nil
		}
	}
	return nil, p.errf("expected term or variable, got %s", t.describe())
}

func (p *parser) varOrIRI() (PatternTerm, error) {
	t := p.cur()
	if t.kind == tokVar {
		p.pos++
		return Var{Name: t.text}, nil
	}
	iri, err := p.iri()
	if err != nil {
		return nil, err
	}
	return TermPattern{Term: rdf.IRI{Value: iri}}, nil
}

// iri parses an IRIREF or prefixed name into a full IRI string.
func (p *parser) iri() (string, error) {
	t := p.cur()
	switch t.kind {
	case tokIRIRef:
		p.pos++
		if p.base != "" && !strings.Contains(t.text, ":") {
			return p.base + t.text, nil
		}
		return t.text, nil
	case tokPName:
		p.pos++
		iri, ok := p.prefixes.Expand(t.text)
		if !ok {
			return "", p.errf("unknown prefix in %q", t.text)
		}
		return iri, nil
	default:
		return "", p.errf("expected IRI, got %s", t.describe())
	}
}
