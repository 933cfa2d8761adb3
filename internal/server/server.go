package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"redislite/internal/metrics"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second

	rejectWriteTimeout = 100 * time.Millisecond
)

// ListenAndServe слушает addr и обслуживает соединения до Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve принимает соединения на ln, по горутине на соединение.
// Ошибки Accept логируются, цикл продолжается.
// После Shutdown возвращает ErrServerClosed.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.inShutdown {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("server listening")

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.shuttingDown() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			backoff = nextBackoff(backoff)
			s.log.Error().Err(err).Dur("retry_in", backoff).Msg("accept error")

			select {
			case <-time.After(backoff):
			case <-s.stopCh:
				return ErrServerClosed
			}
			continue
		}

		backoff = 0
		s.admit(conn)
	}
}

// Addr возвращает фактический адрес (после Serve) или заданный.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown перестаёт принимать соединения и ждёт, пока открытые
// соединения закроются сами. Когда ctx истекает, оставшиеся
// соединения закрываются принудительно.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.inShutdown {
		s.mu.Unlock()
		return nil
	}
	s.inShutdown = true
	close(s.stopCh)
	ln := s.listener
	s.mu.Unlock()

	s.log.Info().Msg("shutting down")

	if ln != nil {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.log.Warn().Err(err).Msg("listener close error")
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("server stopped")
		return nil
	case <-ctx.Done():
		n := s.closeConns()
		s.log.Warn().Int("connections", n).Msg("shutdown timeout, closing remaining connections")
		<-done
		return ctx.Err()
	}
}

// admit применяет лимит соединений и запускает обработчик.
func (s *Server) admit(conn net.Conn) {
	if s.sem != nil && !s.sem.TryAcquire(1) {
		metrics.ConnectionsRejected.Inc()
		s.log.Warn().Str("remote", conn.RemoteAddr().String()).Msg("connection limit reached")

		// Отказ пишем вне accept-цикла: медленный клиент не тормозит приём.
		go reject(conn)
		return
	}

	if !s.track(conn) {
		s.release()
		conn.Close()
		return
	}

	go func() {
		defer s.release()
		defer s.untrack(conn)
		s.handleConnection(conn)
	}()
}

func reject(conn net.Conn) {
	conn.SetWriteDeadline(time.Now().Add(rejectWriteTimeout))
	io.WriteString(conn, respTooManyConns)
	conn.Close()
}

// track регистрирует соединение. false — сервер уже останавливается.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inShutdown {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.wg.Done()
}

func (s *Server) release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}

// closeConns закрывает все открытые соединения.
func (s *Server) closeConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		conn.Close()
	}
	return len(s.conns)
}

func (s *Server) shuttingDown() bool {
	select {
	case <-s.stopCh:
		return true
	default:
		return false
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptBackoff
	}
	d *= 2
	if d > maxAcceptBackoff {
		d = maxAcceptBackoff
	}
	return d
}
