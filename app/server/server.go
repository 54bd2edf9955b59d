package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xavierroma/rakis/app/config"
	"github.com/xavierroma/rakis/app/router"
	"github.com/xavierroma/rakis/app/types"
)

const name = "github.com/xavierroma/rakis/app/server"

var (
	tracer = otel.Tracer(name)
	meter  = otel.Meter(name)
)

type Server struct {
	cfg        config.Config
	router     router.Router
	serializer Serializer
	logger     *slog.Logger

	requests      metric.Int64Counter
	parseFailures metric.Int64Counter
}

func NewServer(cfg config.Config, r router.Router, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Responses written, by status code"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	parseFailures, err := meter.Int64Counter("http.server.parse_failures",
		metric.WithDescription("Request buffers that could not be parsed"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:           cfg,
		router:        r,
		serializer:    Serializer{StrictFraming: cfg.StrictFraming},
		logger:        logger,
		requests:      requests,
		parseFailures: parseFailures,
	}, nil
}

// Handle turns one raw request buffer into response bytes. It keeps no state
// between calls and is safe for concurrent use.
func (s *Server) Handle(buf []byte) []byte {
	_, out, _ := s.process(buf)
	return s.serializer.Serialize(out)
}

// process parses and routes buf. A parse failure is answered with 400 and
// reported as the returned error.
func (s *Server) process(buf []byte) (types.Request, types.Outcome, error) {
	req, err := Parse(buf)
	if err != nil {
		return req, types.NewOutcome(types.StatusBadRequest), err
	}
	return req, s.router.Route(req), nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.logger.Info("listening", "addr", l.Addr().String())
	return s.Serve(ctx, l)
}

// Serve accepts connections until ctx is done or l is closed, then waits for
// in-flight connections. At most cfg.MaxConns connections are handled at once.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	slots := make(chan struct{}, max(s.cfg.MaxConns, 1))
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", "err", err)
			continue
		}

		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			conn.Close()
			return nil
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-slots }()
			s.handleConnection(ctx, conn)
		}()
	}
}

// handleConnection does exactly one read and one write, then closes conn.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	ctx, span := tracer.Start(ctx, "handle", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	remote := conn.RemoteAddr().String()
	logger := s.logger.With("remote", remote)

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	buf := make([]byte, max(s.cfg.BufferSize, 1))
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			logger.WarnContext(ctx, "read failed", "err", err)
		}
		return
	}
	logger.DebugContext(ctx, "request", "raw", string(buf[:n]))

	req, out, err := s.process(buf[:n])
	if err != nil {
		logger.InfoContext(ctx, "rejecting request", "err", err)
		s.parseFailures.Add(ctx, 1)
	} else {
		span.SetAttributes(
			attribute.String("http.request.method", string(req.Method)),
			attribute.String("url.path", req.Target),
		)
	}

	statusAttr := attribute.Int("http.response.status_code", out.Status.Code())
	span.SetAttributes(statusAttr)
	s.requests.Add(ctx, 1, metric.WithAttributes(statusAttr))

	res := s.serializer.Serialize(out)
	logger.DebugContext(ctx, "response", "raw", string(res))

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if _, err := conn.Write(res); err != nil {
		logger.WarnContext(ctx, "write failed", "err", err)
		return
	}

	logger.InfoContext(ctx, "served", "method", req.Method, "path", req.Target, "status", out.Status.Code())
}
