package metadata

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying md.
func NewContext(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, contextKey{}, md)
}

// FromContext returns the metadata stored by NewContext, or nil.
func FromContext(ctx context.Context) Metadata {
	md, _ := ctx.Value(contextKey{}).(Metadata)
	return md
}
