package server

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// WithLogger задаёт логгер сервера.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithReadBufferSize задаёт размер буфера чтения на соединение.
// Строки длиннее буфера собираются из нескольких чтений.
func WithReadBufferSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.readBufSize = n
		}
	}
}

// WithMaxLineBytes ограничивает длину строки запроса.
func WithMaxLineBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLineBytes = n
		}
	}
}

// WithMaxConnections ограничивает число одновременных соединений.
// 0 — без лимита. Лишние соединения получают ошибку и закрываются.
func WithMaxConnections(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(int64(n))
		} else {
			s.sem = nil
		}
	}
}

// WithIdleTimeout закрывает соединение без запросов дольше d. 0 — никогда.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}
