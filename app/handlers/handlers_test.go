package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-rakis/tinyhttp/app/router"
	"github.com/go-rakis/tinyhttp/app/types"
)

func serve(t *testing.T, h types.Handler, req types.Request) (types.Response, error) {
	t.Helper()
	res := types.Response{Status: types.StatusOK}
	err := h(context.Background(), req, &res)
	return res, err
}

func plain(body string, length string) types.Response {
	return types.Response{
		Status: types.StatusOK,
		Headers: types.Headers{
			{Name: "Content-Type", Value: "text/plain"},
			{Name: "Content-Length", Value: length},
		},
		Body: []byte(body),
	}
}

func TestEcho(t *testing.T) {
	tests := []struct {
		name   string
		method types.Method
		target string
		want   types.Response
	}{
		{"ASCII", types.Get, "/echo/abc", plain("abc", "3")},
		{"Multi-Byte Counts Bytes", types.Get, "/echo/日本", plain("日本", "6")},
		{"Nested Segments", types.Get, "/echo/a/b", plain("a/b", "3")},
		{"No Suffix", types.Get, "/echo", plain("", "0")},
		{"Trailing Slash", types.Get, "/echo/", plain("", "0")},
		{"POST Ignored", types.Post, "/echo/abc", plain("abc", "3")},
		{"Longer Prefix Kept Verbatim", types.Get, "/echoes", plain("/echoes", "7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := serve(t, Echo, types.Request{Method: tt.method, Target: tt.target})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestUserAgent(t *testing.T) {
	res, err := serve(t, UserAgent, types.Request{
		Method:  types.Get,
		Target:  "/user-agent",
		Headers: types.Headers{{Name: "Host", Value: "x"}, {Name: "user-agent", Value: "foo/1.0"}, {Name: "User-Agent", Value: "bar/2.0"}},
	})
	require.NoError(t, err)
	assert.Equal(t, plain("foo/1.0", "7"), res)

	_, err = serve(t, UserAgent, types.Request{Method: types.Get, Target: "/user-agent"})
	assert.ErrorIs(t, err, types.ErrMissingHeader)
}

func TestRootAndNotFound(t *testing.T) {
	res, err := serve(t, Root, types.Request{Method: "DELETE", Target: "/"})
	require.NoError(t, err)
	assert.Equal(t, types.Response{Status: types.StatusOK}, res)

	res, err = serve(t, NotFound, types.Request{Method: types.Get, Target: "/nope"})
	require.NoError(t, err)
	assert.Equal(t, types.Response{Status: types.StatusNotFound}, res)
}

func TestRoutes(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		root   string
		target string
		want   types.Status
	}{
		{"Root", "", "/", types.StatusOK},
		{"Echo", "", "/echo/x", types.StatusOK},
		{"User-Agent Prefix", "", "/user-agent/extra", types.StatusOK},
		{"Files Disabled", "", "/files/a.txt", types.StatusNotFound},
		{"Files Enabled Missing File", root, "/files/a.txt", types.StatusNotFound},
		{"Files Enabled Wrong Method", root, "/files/a.txt", types.StatusMethodNotAllowed},
		{"Unknown", root, "/nope", types.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := types.Get
			if tt.want == types.StatusMethodNotAllowed {
				method = "PATCH"
			}
			req := types.Request{
				Method:  method,
				Target:  tt.target,
				Headers: types.Headers{{Name: "User-Agent", Value: "test"}},
			}
			res, err := Routes(router.New(), tt.root).HandleRequest(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}
