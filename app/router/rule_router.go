package router

import (
	"context"
	"strings"

	"github.com/go-rakis/tinyhttp/app/types"
)

type rule struct {
	path    string
	prefix  bool
	handler types.Handler
}

func (r rule) matches(path string) bool {
	if r.prefix {
		return strings.HasPrefix(path, r.path)
	}
	return path == r.path
}

type ruleRouter struct {
	rules    []rule
	notFound types.Handler
}

func newRuleRouter() *ruleRouter {
	return &ruleRouter{
		notFound: notFound,
	}
}

func (r *ruleRouter) Exact(path string, handler types.Handler) Router {
	r.rules = append(r.rules, rule{path: path, handler: handler})
	return r
}

func (r *ruleRouter) Prefix(prefix string, handler types.Handler) Router {
	r.rules = append(r.rules, rule{path: prefix, prefix: true, handler: handler})
	return r
}

func (r *ruleRouter) NotFound(handler types.Handler) Router {
	r.notFound = handler
	return r
}

// Match ignores method; handlers that care about it check req.Method.
func (r *ruleRouter) Match(_ types.Method, path string) types.Handler {
	for _, rl := range r.rules {
		if rl.matches(path) {
			return rl.handler
		}
	}
	return r.notFound
}

func (r *ruleRouter) HandleRequest(ctx context.Context, req types.Request) (types.Response, error) {
	handler := r.Match(req.Method, req.Target)
	response := types.Response{Status: types.StatusOK}
	if err := handler(ctx, req, &response); err != nil {
		return types.Response{}, err
	}
	return response, nil
}

func notFound(_ context.Context, _ types.Request, res *types.Response) error {
	res.Status = types.StatusNotFound
	return nil
}
