package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// ErrServerClosed возвращается из Serve после Shutdown.
var ErrServerClosed = errors.New("server closed")

const (
	defaultReadBufferSize = 1024
	defaultMaxLineBytes   = 64 * 1024

	respTooManyConns = "ERROR: Too many connections\n"
	respTooLong      = "ERROR: Command too long"
)

// Processor превращает строку запроса в строку ответа.
type Processor interface {
	Process(line string) string
}

// Option — функциональная опция сервера.
type Option func(*Server)

// Server — TCP-сервер с построчным протоколом.
type Server struct {
	addr string
	proc Processor
	log  zerolog.Logger

	readBufSize  int
	maxLineBytes int
	idleTimeout  time.Duration
	sem          *semaphore.Weighted // nil = без лимита соединений

	mu         sync.Mutex
	listener   net.Listener
	conns      map[net.Conn]struct{}
	inShutdown bool
	stopCh     chan struct{}
	wg         sync.WaitGroup
}
