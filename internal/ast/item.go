package ast

import (
	"rill/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
)

type Item struct {
	Kind ItemKind
	Span source.Span
	Name string
	Body ExprID // Block expression
}

type Items struct {
	Arena *Arena[Item]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena: NewArena[Item](capHint),
	}
}

func (it *Items) NewFn(span source.Span, name string, body ExprID) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind: ItemFn,
		Span: span,
		Name: name,
		Body: body,
	}))
}

func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}
