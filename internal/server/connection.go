package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"

	"redislite/internal/metrics"
)

// handleConnection обслуживает одно соединение: строка запроса,
// ответ, следующая строка. Сокет закрывается на любом выходе.
func (s *Server) handleConnection(conn net.Conn) {
	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()

	metrics.ConnectionsTotal.Inc()
	metrics.ConnectionsActive.Inc()
	log.Info().Msg("client connected")

	defer func() {
		conn.Close()
		metrics.ConnectionsActive.Dec()
		log.Info().Msg("client disconnected")
	}()

	reader := newLineReader(conn, s.readBufSize, s.maxLineBytes)
	writer := bufio.NewWriter(conn)

	for {
		if s.idleTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
		}

		var resp string
		line, err := reader.ReadLine()
		switch {
		case err == nil:
			log.Debug().Str("request", line).Msg("received")
			resp = s.proc.Process(line)
		case errors.Is(err, errLineTooLong):
			log.Warn().Int("max_line_bytes", s.maxLineBytes).Msg("request line too long")
			resp = respTooLong
		default:
			s.logReadError(log, err)
			return
		}

		writer.WriteString(resp)
		writer.WriteByte('\n')
		if err := writer.Flush(); err != nil {
			log.Warn().Err(err).Msg("write failed")
			return
		}

		if s.shuttingDown() {
			return
		}
	}
}

func (s *Server) logReadError(log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		return
	case errors.Is(err, os.ErrDeadlineExceeded):
		log.Info().Dur("idle_timeout", s.idleTimeout).Msg("idle connection closed")
	case errors.Is(err, net.ErrClosed) || s.shuttingDown():
		log.Debug().Err(err).Msg("connection closed during shutdown")
	default:
		log.Warn().Err(err).Msg("read failed")
	}
}
