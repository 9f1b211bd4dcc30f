package router

import (
	"context"

	"github.com/go-rakis/tinyhttp/app/types"
)

// Router selects exactly one handler per request. Rules are checked in the
// order they were registered; the first match wins.
type Router interface {
	Exact(path string, handler types.Handler) Router
	Prefix(prefix string, handler types.Handler) Router
	NotFound(handler types.Handler) Router

	Match(method types.Method, path string) types.Handler
	HandleRequest(ctx context.Context, req types.Request) (types.Response, error)
}

func New() Router {
	return newRuleRouter()
}
