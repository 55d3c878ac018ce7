package ast

import (
	"rill/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprUnary
	ExprBinary
	ExprGroup
	ExprCall
	ExprBlock
	ExprIf
	ExprIfLet
	ExprMacro
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprGroup:
		return "Group"
	case ExprCall:
		return "Call"
	case ExprBlock:
		return "Block"
	case ExprIf:
		return "If"
	case ExprIfLet:
		return "IfLet"
	case ExprMacro:
		return "Macro"
	}
	return "Unknown"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type (
	ExprIdentData struct {
		Name string
	}
	ExprLitData struct {
		Text string
	}
	ExprUnaryData struct {
		Op      UnaryOp
		Operand ExprID
	}
	ExprBinaryData struct {
		Op    BinOp
		Left  ExprID
		Right ExprID
	}
	ExprGroupData struct {
		Inner ExprID
	}
	ExprCallData struct {
		Callee ExprID
		Args   []ExprID
	}
	ExprBlockData struct {
		Stmts []StmtID
	}
	// ExprIfData: Else is NoExprID when absent; otherwise a Block, If, or
	// IfLet expression (the latter two form an else-if chain).
	ExprIfData struct {
		Cond ExprID
		Then ExprID // always a Block
		Else ExprID
	}
	ExprIfLetData struct {
		Pat       ExprID // binding pattern: ident or ctor-shaped call
		Scrutinee ExprID
		Then      ExprID // always a Block
		Else      ExprID
	}
	// ExprMacroData: Body is the expression the macro expands to; every span
	// allocated inside it carries Ctx.
	ExprMacroData struct {
		Name string
		Body ExprID
		Ctx  source.ExpansionID
	}
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLitData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Groups   *Arena[ExprGroupData]
	Calls    *Arena[ExprCallData]
	Blocks   *Arena[ExprBlockData]
	Ifs      *Arena[ExprIfData]
	IfLets   *Arena[ExprIfLetData]
	Macros   *Arena[ExprMacroData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated to capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLitData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Groups:   NewArena[ExprGroupData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Blocks:   NewArena[ExprBlockData](capHint),
		Ifs:      NewArena[ExprIfData](capHint),
		IfLets:   NewArena[ExprIfLetData](capHint),
		Macros:   NewArena[ExprMacroData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) NewLit(span source.Span, text string) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Text: text})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) NewBinary(span source.Span, op BinOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID) ExprID {
	payload := e.Blocks.Allocate(ExprBlockData{Stmts: stmts})
	return e.new(ExprBlock, span, PayloadID(payload))
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

func (e *Exprs) NewIfLet(span source.Span, pat, scrutinee, then, els ExprID) ExprID {
	payload := e.IfLets.Allocate(ExprIfLetData{Pat: pat, Scrutinee: scrutinee, Then: then, Else: els})
	return e.new(ExprIfLet, span, PayloadID(payload))
}

func (e *Exprs) NewMacro(span source.Span, name string, body ExprID, ctx source.ExpansionID) ExprID {
	payload := e.Macros.Allocate(ExprMacroData{Name: name, Body: body, Ctx: ctx})
	return e.new(ExprMacro, span, PayloadID(payload))
}

// Typed payload accessors. Each returns nil when the ID does not refer to an
// expression of the expected kind.

func (e *Exprs) IdentData(id ExprID) *ExprIdentData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprIdent {
		return e.Idents.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) LitData(id ExprID) *ExprLitData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprLit {
		return e.Literals.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) UnaryData(id ExprID) *ExprUnaryData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprUnary {
		return e.Unaries.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) BinaryData(id ExprID) *ExprBinaryData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprBinary {
		return e.Binaries.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) GroupData(id ExprID) *ExprGroupData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprGroup {
		return e.Groups.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) CallData(id ExprID) *ExprCallData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprCall {
		return e.Calls.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) BlockData(id ExprID) *ExprBlockData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprBlock {
		return e.Blocks.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) IfData(id ExprID) *ExprIfData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprIf {
		return e.Ifs.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) IfLetData(id ExprID) *ExprIfLetData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprIfLet {
		return e.IfLets.Get(uint32(ex.Payload))
	}
	return nil
}

func (e *Exprs) MacroData(id ExprID) *ExprMacroData {
	if ex := e.Get(id); ex != nil && ex.Kind == ExprMacro {
		return e.Macros.Get(uint32(ex.Payload))
	}
	return nil
}
