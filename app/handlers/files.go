package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-rakis/tinyhttp/app/types"
)

const filesPrefix = "/files/"

// Files serves and stores files beneath Root.
type Files struct {
	Root string
}

func (f Files) Serve(ctx context.Context, req types.Request, res *types.Response) error {
	path, ok := f.resolve(req.Target)
	if !ok {
		zerolog.Ctx(ctx).Warn().Str("target", req.Target).Msg("rejected file path")
		res.Status = types.StatusNotFound
		return nil
	}

	switch req.Method {
	case types.Get:
		return f.get(path, res)
	case types.Post:
		return f.post(ctx, path, req.Body, res)
	default:
		res.Status = types.StatusMethodNotAllowed
		return nil
	}
}

// resolve maps a request target to a path under Root. Names that are empty,
// absolute or climb out of Root are rejected.
func (f Files) resolve(target string) (string, bool) {
	name, ok := strings.CutPrefix(target, filesPrefix)
	if !ok || !filepath.IsLocal(name) {
		return "", false
	}
	return filepath.Join(f.Root, name), true
}

func (f Files) get(path string, res *types.Response) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		res.Status = types.StatusNotFound
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Status = types.StatusNotFound
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrFilesystem, err)
	}

	res.Status = types.StatusOK
	res.Headers.Add("Content-Type", "application/octet-stream")
	res.Headers.Add("Content-Length", strconv.Itoa(len(data)))
	res.Body = data
	return nil
}

func (f Files) post(ctx context.Context, path string, body []byte, res *types.Response) error {
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("%w: %w", types.ErrFilesystem, err)
	}
	zerolog.Ctx(ctx).Debug().Str("file", path).Int("bytes", len(body)).Msg("file written")

	res.Status = types.StatusCreated
	res.Headers.Add("Content-Type", "text/plain")
	return nil
}
