package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-rakis/tinyhttp/app/types"
)

// ReadRequest parses exactly one request from r. The body is read only when
// a positive Content-Length is declared; nothing past it is consumed.
func ReadRequest(r io.Reader, logger zerolog.Logger) (types.Request, error) {
	var result types.Request
	reader, ok := r.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(r)
	}

	requestLine, err := readLine(reader)
	if err != nil && !errors.Is(err, io.EOF) {
		return result, fmt.Errorf("error reading request line: %w", err)
	}

	fields := strings.Fields(requestLine)
	if len(fields) < 2 {
		return result, fmt.Errorf("%w: %q", types.ErrMalformedStartLine, requestLine)
	}
	result.Method = types.Method(fields[0])
	result.Target = fields[1]

	for {
		headerLine, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return result, fmt.Errorf("error reading header line: %w", err)
		}
		eof := err != nil

		if headerLine == "" {
			break
		}

		name, value, found := strings.Cut(headerLine, ":")
		if !found {
			logger.Debug().Str("line", headerLine).Msg("skipping malformed header line")
		} else {
			result.Headers.Add(name, strings.TrimPrefix(value, " "))
		}

		if eof {
			break
		}
	}

	contentLength := declaredLength(result.Headers)
	if contentLength <= 0 {
		return result, nil
	}

	var body bytes.Buffer
	n, err := io.Copy(&body, io.LimitReader(reader, contentLength))
	if err != nil {
		return result, fmt.Errorf("error reading request body: %w", err)
	}
	if n < contentLength {
		return result, fmt.Errorf("%w: got %d of %d bytes", types.ErrTruncatedBody, n, contentLength)
	}
	result.Body = body.Bytes()

	return result, nil
}

// readLine returns the next line without its CRLF or LF terminator. At end of
// stream it returns whatever was read together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}

// declaredLength returns the first Content-Length value, or 0 when it is
// absent or not an integer.
func declaredLength(h types.Headers) int64 {
	v, ok := h.Get("Content-Length")
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
