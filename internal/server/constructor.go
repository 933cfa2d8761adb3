package server

import (
	"net"

	"redislite/internal/logging"
)

// New создаёт сервер. Все соединения делят один proc.
func New(addr string, proc Processor, opts ...Option) *Server {
	s := &Server{
		addr:         addr,
		proc:         proc,
		log:          logging.NewLogger("server"),
		readBufSize:  defaultReadBufferSize,
		maxLineBytes: defaultMaxLineBytes,
		conns:        make(map[net.Conn]struct{}),
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
