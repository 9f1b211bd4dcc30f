package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-rakis/tinyhttp/app/types"
)

// RequestHandler turns one parsed request into a response.
type RequestHandler interface {
	HandleRequest(ctx context.Context, req types.Request) (types.Response, error)
}

type Server struct {
	addr    string
	handler RequestHandler
	logger  zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

func New(addr string, h RequestHandler, logger zerolog.Logger) *Server {
	return &Server{
		addr:    addr,
		handler: h,
		logger:  logger,
	}
}

// ListenAndServe binds the configured address and serves until Close.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}
	return s.Serve(l)
}

// Serve accepts connections on l and handles each one on its own goroutine.
// It returns nil once l is closed.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return l.Close()
	}
	s.listener = l
	s.mu.Unlock()

	s.logger.Info().Str("addr", l.Addr().String()).Msg("listening")
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error().Err(err).Msg("error accepting connection")
			continue
		}
		go s.handleConnection(conn)
	}
}

// Close stops the accept loop. Connections already accepted run to completion.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Debug().Msg("connection accepted")

	req, err := ReadRequest(conn, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to parse request")
		return
	}

	logger = logger.With().Str("method", string(req.Method)).Str("path", req.Target).Logger()
	ctx := logger.WithContext(context.Background())

	res := s.dispatch(ctx, req)
	if err := WriteResponse(conn, res); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
		return
	}
	logger.Info().Int("status", res.Status.Code()).Int("bytes", len(res.Body)).Msg("request handled")
}

// dispatch runs the handler and converts its failures, panics included, into
// an error response so a bad request never takes down the process.
func (s *Server) dispatch(ctx context.Context, req types.Request) (res types.Response) {
	logger := zerolog.Ctx(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("handler panicked")
			res = types.Response{Status: types.StatusInternalServerError}
		}
	}()

	res, err := s.handler.HandleRequest(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("handler failed")
		return errorResponse(err)
	}
	return res
}

func errorResponse(err error) types.Response {
	switch {
	case errors.Is(err, types.ErrMissingHeader):
		return types.Response{Status: types.StatusBadRequest}
	default:
		return types.Response{Status: types.StatusInternalServerError}
	}
}
