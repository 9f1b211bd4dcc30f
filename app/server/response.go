package server

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/go-rakis/tinyhttp/app/types"
)

const crlf = "\r\n"

// WriteResponse serializes r onto w. A Content-Length header is added when
// the body is non-empty and the handler did not set one.
func WriteResponse(w io.Writer, r types.Response) error {
	bw := bufio.NewWriter(w)

	if len(r.Body) > 0 && !r.Headers.Has("Content-Length") {
		r.Headers = append(r.Headers[:len(r.Headers):len(r.Headers)],
			types.Header{Name: "Content-Length", Value: strconv.Itoa(len(r.Body))})
	}

	if _, err := bw.WriteString("HTTP/1.1 " + r.Status.String() + crlf); err != nil {
		return fmt.Errorf("error writing status line: %w", err)
	}
	for _, h := range r.Headers {
		if _, err := bw.WriteString(h.Name + ": " + h.Value + crlf); err != nil {
			return fmt.Errorf("error writing header %s: %w", h.Name, err)
		}
	}
	if _, err := bw.WriteString(crlf); err != nil {
		return fmt.Errorf("error writing header/body separator: %w", err)
	}
	if _, err := bw.Write(r.Body); err != nil {
		return fmt.Errorf("error writing body: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error flushing response: %w", err)
	}
	return nil
}
