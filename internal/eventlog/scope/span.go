package scope

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AttrDepth - атрибут span-а с глубиной вложенности контекста.
const AttrDepth = "scope.depth"

// Start входит в контекст name и открывает OTel span с тем же именем.
// Span становится дочерним по отношению к span-у из ctx.
// Вызывающая сторона завершает span через span.End() и возвращается
// к родительскому ctx (или вызывает Exit) при выходе из контекста.
func Start(ctx context.Context, tracer trace.Tracer, name string) (context.Context, trace.Span) {
	return Span(Enter(ctx, name), tracer)
}

// Span открывает OTel span для самого внутреннего активного контекста ctx.
// Используется, когда вход в контекст уже выполнен другим компонентом
// (например, Subscriber.OnScopeEnter). Без активного контекста span
// получает имя "scope".
func Span(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	name := "scope"
	if f := top(ctx); f != nil {
		name = f.name
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.Int(AttrDepth, Depth(ctx))))
}
