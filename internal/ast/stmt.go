package ast

import (
	"rill/internal/source"
)

type StmtKind uint8

const (
	// StmtExpr is an expression in statement position without a trailing
	// semicolon; StmtSemi is the same with one. The matcher distinguishes
	// them because rewrites reproduce source text verbatim.
	StmtExpr StmtKind = iota
	StmtSemi
	StmtLet
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expr"
	case StmtSemi:
		return "Semi"
	case StmtLet:
		return "Let"
	}
	return "Unknown"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type (
	// StmtExprData backs both StmtExpr and StmtSemi.
	StmtExprData struct {
		Expr ExprID
	}
	StmtLetData struct {
		Name string
		Init ExprID
	}
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena *Arena[Stmt]
	Exprs *Arena[StmtExprData]
	Lets  *Arena[StmtLetData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Exprs: NewArena[StmtExprData](capHint),
		Lets:  NewArena[StmtLetData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	kind := StmtExpr
	if semi {
		kind = StmtSemi
	}
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) NewLet(span source.Span, name string, init ExprID) StmtID {
	payload := s.Lets.Allocate(StmtLetData{Name: name, Init: init})
	return s.new(StmtLet, span, PayloadID(payload))
}

// ExprData returns the payload of an expression statement (with or without
// semicolon), or nil for other kinds.
func (s *Stmts) ExprData(id StmtID) *StmtExprData {
	if st := s.Get(id); st != nil && (st.Kind == StmtExpr || st.Kind == StmtSemi) {
		return s.Exprs.Get(uint32(st.Payload))
	}
	return nil
}

func (s *Stmts) LetData(id StmtID) *StmtLetData {
	if st := s.Get(id); st != nil && st.Kind == StmtLet {
		return s.Lets.Get(uint32(st.Payload))
	}
	return nil
}
