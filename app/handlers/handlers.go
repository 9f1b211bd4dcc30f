// Package handlers implements the endpoints served by tinyhttp.
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rakis/tinyhttp/app/router"
	"github.com/go-rakis/tinyhttp/app/types"
)

// Routes registers every endpoint on r in matching order. The /files
// endpoint only exists when root is non-empty.
func Routes(r router.Router, root string) router.Router {
	r.Exact("/", Root).
		Prefix("/echo", Echo).
		Prefix("/user-agent", UserAgent)
	if root != "" {
		r.Prefix("/files", Files{Root: root}.Serve)
	}
	return r.NotFound(NotFound)
}

// Root is a liveness probe.
func Root(_ context.Context, _ types.Request, res *types.Response) error {
	res.Status = types.StatusOK
	return nil
}

func NotFound(_ context.Context, _ types.Request, res *types.Response) error {
	res.Status = types.StatusNotFound
	return nil
}

// Echo responds with whatever follows /echo/ in the path.
func Echo(_ context.Context, req types.Request, res *types.Response) error {
	var body string
	if req.Target != "/echo" {
		body = strings.TrimPrefix(req.Target, "/echo/")
	}
	plainText(res, []byte(body))
	return nil
}

// UserAgent reflects the first User-Agent header back to the client.
func UserAgent(_ context.Context, req types.Request, res *types.Response) error {
	ua, ok := req.Headers.Get("User-Agent")
	if !ok {
		return fmt.Errorf("%w: User-Agent", types.ErrMissingHeader)
	}
	plainText(res, []byte(ua))
	return nil
}

func plainText(res *types.Response, body []byte) {
	res.Status = types.StatusOK
	res.Headers.Add("Content-Type", "text/plain")
	res.Headers.Add("Content-Length", strconv.Itoa(len(body)))
	res.Body = body
}
