package ast

// Arena — плоское хранилище узлов одного типа. Индексы 1-based, ноль
// зарезервирован под "нет узла", поэтому Get(0) возвращает nil и
// паттерны спокойно матчатся по отсутствующим слотам.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate кладёт значение и возвращает его 1-based индекс.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice — read-only доступ ко всем элементам, для обходов.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
