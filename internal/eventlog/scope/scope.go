// Package scope отслеживает вложенность именованных контекстов выполнения.
//
// Цепочка контекстов хранится в context.Context: каждая горутина или запрос
// передаёт свой ctx, поэтому цепочки разных путей выполнения не смешиваются
// и не требуют синхронизации.
//
// Пример использования:
//
//	ctx = scope.Enter(ctx, "outer")
//	ctx = scope.Enter(ctx, "inner")
//	scope.Chain(ctx) // ["outer", "inner"]
//	ctx = scope.Exit(ctx)
//	scope.Chain(ctx) // ["outer"]
package scope

import (
	"context"
	"errors"
)

// ErrUnbalancedExit - Exit вызван при пустой цепочке.
// Это нарушение контракта вызывающей стороны: вложенность должна быть сбалансирована.
var ErrUnbalancedExit = errors.New("scope: exit без соответствующего enter")

// chainKey - ключ для хранения вершины цепочки в context.
type chainKey struct{}

// frame - неизменяемый элемент цепочки. Exit не изменяет frame,
// а возвращает ctx с родительским элементом, поэтому ранее полученные
// ctx продолжают видеть свою цепочку.
type frame struct {
	name   string
	parent *frame
	depth  int
}

func top(ctx context.Context) *frame {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(chainKey{}).(*frame)
	return f
}

// Enter возвращает ctx, в котором name добавлен во вложенную цепочку.
func Enter(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	parent := top(ctx)
	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}
	return context.WithValue(ctx, chainKey{}, &frame{name: name, parent: parent, depth: depth})
}

// Exit возвращает ctx без последнего добавленного имени.
// Предусловие: цепочка не пуста (Depth(ctx) > 0). При нарушении
// предусловия вызывает panic с ErrUnbalancedExit.
func Exit(ctx context.Context) context.Context {
	f := top(ctx)
	if f == nil {
		panic(ErrUnbalancedExit)
	}
	return context.WithValue(ctx, chainKey{}, f.parent)
}

// Depth возвращает количество активных контекстов.
func Depth(ctx context.Context) int {
	if f := top(ctx); f != nil {
		return f.depth
	}
	return 0
}

// Chain возвращает имена активных контекстов, внешний первым.
// При отсутствии контекстов возвращает nil.
func Chain(ctx context.Context) []string {
	f := top(ctx)
	if f == nil {
		return nil
	}
	names := make([]string, f.depth)
	for i := f.depth - 1; f != nil; i, f = i-1, f.parent {
		names[i] = f.name
	}
	return names
}
