package frontend

import (
	"fmt"
	"strconv"

	"github.com/whisper-lang/whisper/internal/syntax"
)

// ParseError reports a malformed construct at a position.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// precedence levels for the four arithmetic operators, Pratt-style.
const (
	_ int = iota
	precLowest
	precAdditive
	precMultiplicative
)

var precedences = map[TokenType]int{
	PLUS:  precAdditive,
	MINUS: precAdditive,
	STAR:  precMultiplicative,
	SLASH: precMultiplicative,
}

// Parser is a recursive-descent parser that emits directly into a
// syntax.Builder as it recognizes each construct — it never builds an
// intermediate tree of its own (spec.md places tokenizer/parser/PST-builder
// out of the core's scope as a single external collaborator; Whisper folds
// the three into one pass for its small surface grammar).
type Parser struct {
	l *Lexer

	cur  Token
	peek Token

	errors []*ParseError
	b      *syntax.Builder
}

// NewParser returns a Parser reading from l and emitting into b.
func NewParser(l *Lexer, b *syntax.Builder) *Parser {
	p := &Parser{l: l, b: b}
	p.next()
	p.next()
	return p
}

func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(t TokenType) bool {
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, "expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

// skipSemis consumes any run of statement-terminating newlines/semicolons.
func (p *Parser) skipSemis() {
	for p.cur.Type == SEMI {
		p.next()
	}
}

// ParseFile parses a whole source file into a Block node and returns its PST
// offset. Whisper's embedder entry points (interpret_source_file) drive this
// root through @Block rather than @File: a Block's last statement becomes
// the program's own EvalResult (spec.md §4.5.5), which is what every
// end-to-end scenario in spec.md §8 that expects a literal Value back
// (E1/E2/E5/E6) requires. @File/FileSyntaxFrame's always-Undefined semantics
// (spec.md §4.5.4) are still fully implemented and exercised directly at the
// frame level (internal/frame/file_block_test.go) — nothing in spec.md
// requires the parser's own top-level production to be tagged File, only
// that a File-kind node behaves as §4.5.4 describes when one occurs.
func (p *Parser) ParseFile() int {
	var stmts []int
	p.skipSemis()
	for p.cur.Type != EOF {
		if s := p.parseStatement(); s >= 0 {
			stmts = append(stmts, s)
		}
		p.skipSemis()
	}
	return p.b.EmitBlock(syntax.NodeBlock, stmts)
}

func (p *Parser) parseBlock() int {
	p.expect(LBRACE)
	var stmts []int
	p.skipSemis()
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		if s := p.parseStatement(); s >= 0 {
			stmts = append(stmts, s)
		}
		p.skipSemis()
	}
	p.expect(RBRACE)
	return p.b.EmitBlock(syntax.NodeBlock, stmts)
}

func (p *Parser) parseStatement() int {
	switch p.cur.Type {
	case SEMI:
		return p.b.EmitEmptyStmt()
	case VAR:
		return p.parseVarOrConst(syntax.NodeVarStmt)
	case CONST:
		return p.parseVarOrConst(syntax.NodeConstStmt)
	case DEF:
		return p.parseDef()
	case RETURN:
		return p.parseReturn()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	default:
		expr := p.parseExpr(precLowest)
		return p.b.EmitUnary(syntax.NodeExprStmt, expr)
	}
}

func (p *Parser) parseVarOrConst(kind syntax.NodeType) int {
	p.next() // consume 'var'/'const'
	var bindings []syntax.Binding
	for {
		if p.cur.Type != IDENT {
			p.errorf(p.cur.Pos, "expected identifier in binding, got %s", p.cur.Type)
			break
		}
		name := p.cur.Literal
		p.next()
		initStart := -1
		if p.cur.Type == ASSIGN {
			p.next()
			initStart = p.parseExpr(precLowest)
		}
		bindings = append(bindings, syntax.Binding{Name: name, InitStart: initStart})
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	return p.b.EmitVarOrConst(kind, bindings)
}

func (p *Parser) parseDef() int {
	p.next() // consume 'def'
	name := p.cur.Literal
	p.expect(IDENT)
	p.expect(LPAREN)
	var params []string
	for p.cur.Type != RPAREN && p.cur.Type != EOF {
		params = append(params, p.cur.Literal)
		p.expect(IDENT)
		if p.cur.Type == COMMA {
			p.next()
		}
	}
	p.expect(RPAREN)
	body := p.parseBlock()
	return p.b.EmitDef(name, params, body)
}

func (p *Parser) parseReturn() int {
	p.next() // consume 'return'
	if p.cur.Type == SEMI || p.cur.Type == RBRACE || p.cur.Type == EOF {
		return p.b.EmitReturn(-1)
	}
	expr := p.parseExpr(precLowest)
	return p.b.EmitReturn(expr)
}

func (p *Parser) parseIf() int {
	p.next() // consume 'if'
	cond := p.parseExpr(precLowest)
	then := p.parseBlock()
	elseStart := -1
	if p.cur.Type == ELSE {
		p.next()
		if p.cur.Type == IF {
			elseStart = p.parseIf()
		} else {
			elseStart = p.parseBlock()
		}
	}
	return p.b.EmitIf(cond, then, elseStart)
}

func (p *Parser) parseWhile() int {
	p.next() // consume 'while'
	cond := p.parseExpr(precLowest)
	body := p.parseBlock()
	return p.b.EmitLoop(cond, body)
}

func (p *Parser) parseExpr(minPrec int) int {
	left := p.parseUnary()
	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec <= minPrec {
			break
		}
		op := p.cur.Type
		p.next()
		right := p.parseExpr(prec)
		left = p.b.EmitBinary(binaryNodeType(op), left, right)
	}
	return left
}

func binaryNodeType(op TokenType) syntax.NodeType {
	switch op {
	case PLUS:
		return syntax.NodeAddExpr
	case MINUS:
		return syntax.NodeSubExpr
	case STAR:
		return syntax.NodeMulExpr
	case SLASH:
		return syntax.NodeDivExpr
	default:
		panic("frontend: unreachable binary operator")
	}
}

func (p *Parser) parseUnary() int {
	switch p.cur.Type {
	case PLUS:
		p.next()
		return p.b.EmitUnary(syntax.NodePosExpr, p.parseUnary())
	case MINUS:
		p.next()
		return p.b.EmitUnary(syntax.NodeNegExpr, p.parseUnary())
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() int {
	expr := p.parsePrimary()
	for {
		switch p.cur.Type {
		case DOT:
			p.next()
			member := p.cur.Literal
			p.expect(IDENT)
			expr = p.b.EmitDot(expr, member)
		case LPAREN:
			p.next()
			var args []int
			for p.cur.Type != RPAREN && p.cur.Type != EOF {
				args = append(args, p.parseExpr(precLowest))
				if p.cur.Type == COMMA {
					p.next()
				}
			}
			p.expect(RPAREN)
			expr = p.b.EmitCall(expr, args)
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() int {
	switch p.cur.Type {
	case INT:
		lit := p.cur.Literal
		pos := p.cur.Pos
		p.next()
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			p.errorf(pos, "integer literal out of range: %s", lit)
			n = 0
		}
		return p.b.EmitInteger(int32(n))
	case IDENT:
		name := p.cur.Literal
		p.next()
		return p.b.EmitName(name)
	case LPAREN:
		if arrow, ok := p.tryParseArrow(); ok {
			return arrow
		}
		p.next()
		inner := p.parseExpr(precLowest)
		p.expect(RPAREN)
		return p.b.EmitUnary(syntax.NodeParenExpr, inner)
	default:
		p.errorf(p.cur.Pos, "unexpected token %s %q in expression", p.cur.Type, p.cur.Literal)
		p.next()
		return p.b.EmitInteger(0)
	}
}

// tryParseArrow speculatively scans "(" identList ")" "=>" to distinguish a
// lambda from a parenthesized expression without backtracking the Builder
// (parameter names alone carry no PST side effects, unlike expressions).
func (p *Parser) tryParseArrow() (int, bool) {
	save := *p.l
	savedCur, savedPeek := p.cur, p.peek

	restore := func() {
		*p.l = save
		p.cur, p.peek = savedCur, savedPeek
	}

	p.next() // consume '('
	var params []string
	for p.cur.Type == IDENT {
		params = append(params, p.cur.Literal)
		p.next()
		if p.cur.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	if p.cur.Type != RPAREN {
		restore()
		return 0, false
	}
	p.next() // consume ')'
	if p.cur.Type != ARROW {
		restore()
		return 0, false
	}
	p.next() // consume '=>'
	body := p.parseExpr(precLowest)
	return p.b.EmitArrow(params, body), true
}
