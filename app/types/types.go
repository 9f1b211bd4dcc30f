package types

import (
	"context"
	"strconv"
	"strings"
)

type Method string

const (
	Get  Method = "GET"
	Post Method = "POST"
)

// Handler fills res for req. A returned error is turned into an error
// response by the server; res is discarded in that case.
type Handler func(ctx context.Context, req Request, res *Response) error

type Header struct {
	Name  string
	Value string
}

// Headers keeps header lines in arrival order. Duplicates are preserved.
type Headers []Header

// Get returns the value of the first header whose name matches name
// case-insensitively.
func (h Headers) Get(name string) (string, bool) {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return hdr.Value, true
		}
	}
	return "", false
}

func (h Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

type Request struct {
	Method  Method
	Target  string
	Headers Headers
	Body    []byte
}

type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusBadRequest
	StatusNotFound
	StatusMethodNotAllowed
	StatusInternalServerError
)

var statusLines = map[Status]struct {
	code int
	text string
}{
	StatusOK:                  {200, "OK"},
	StatusCreated:             {201, "Created"},
	StatusBadRequest:          {400, "Bad Request"},
	StatusNotFound:            {404, "Not Found"},
	StatusMethodNotAllowed:    {405, "Method Not Allowed"},
	StatusInternalServerError: {500, "Internal Server Error"},
}

// Code returns the numeric status code, or 500 for an unknown Status.
func (s Status) Code() int {
	if l, ok := statusLines[s]; ok {
		return l.code
	}
	return 500
}

// String returns the status as it appears after the protocol version,
// e.g. "404 Not Found".
func (s Status) String() string {
	l, ok := statusLines[s]
	if !ok {
		l = statusLines[StatusInternalServerError]
	}
	return strconv.Itoa(l.code) + " " + l.text
}

type Response struct {
	Status  Status
	Headers Headers
	Body    []byte
}
