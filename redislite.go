// Package redislite предоставляет встраиваемый in-memory LRU-кеш
// и TCP-сервер с построчным протоколом поверх него.
//
// Использование без сети (embedded):
//
//	db, err := redislite.Open(1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	db.Set("key", "value")
//	val, ok := db.Get("key")
//
// Использование с TCP-сервером:
//
//	db, _ := redislite.Open(1000)
//	defer db.Close()
//	db.ListenAndServe("localhost:6379")
package redislite

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"redislite/internal/command"
	"redislite/internal/logging"
	"redislite/internal/metrics"
	"redislite/internal/server"
	storage "redislite/internal/storage/cache"
	"redislite/internal/storage/monitor"
)

// ErrInvalidConfiguration возвращается из Open при capacity <= 0.
var ErrInvalidConfiguration = storage.ErrInvalidConfiguration

// ErrServerClosed возвращается из ListenAndServe после Close.
var ErrServerClosed = server.ErrServerClosed

// ErrServerRunning возвращается из ListenAndServe, если сервер уже запущен.
var ErrServerRunning = errors.New("redislite: server already running")

// Stats — срез счётчиков кеша.
type Stats = storage.Stats

// DB — встраиваемый кеш. Создаётся через Open().
type DB struct {
	cache   *storage.Cache
	proc    *command.Processor
	monitor *monitor.Monitor
	opts    Options

	mu     sync.Mutex
	srv    *server.Server // nil, пока сервер не слушает
	closed bool
}

// Options содержит опциональные настройки.
type Options struct {
	// Capacity — максимальное кол-во ключей, обязательно > 0.
	// При превышении вытесняется самый давно использованный ключ.
	Capacity int

	// MaxConnections — лимит одновременных TCP-соединений (0 = без лимита).
	MaxConnections int

	// IdleTimeout закрывает молчащие соединения (0 = никогда).
	IdleTimeout time.Duration

	// StatsInterval — период обновления метрик кеша (0 = только при старте).
	StatsInterval time.Duration

	// Logger — логгер; по умолчанию глобальный zerolog.
	Logger *zerolog.Logger
}

// Open создаёт кеш на capacity ключей.
//
//	db, err := redislite.Open(100)
//	defer db.Close()
func Open(capacity int) (*DB, error) {
	return OpenWithOptions(Options{Capacity: capacity})
}

// OpenWithOptions создаёт кеш с дополнительными настройками.
func OpenWithOptions(opts Options) (*DB, error) {
	logger := logging.NewLogger("redislite")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	opts.Logger = &logger

	cache, err := storage.New(opts.Capacity,
		storage.WithGetCallback(metrics.ObserveGet),
		storage.WithEvictCallback(func(key, _ string) {
			metrics.CacheEvictions.Inc()
			logger.Debug().Str("key", key).Msg("evicted")
		}),
	)
	if err != nil {
		return nil, err
	}

	m := monitor.New(cache, opts.StatsInterval, logger)
	m.Start()

	return &DB{
		cache:   cache,
		proc:    command.NewProcessor(cache, logger),
		monitor: m,
		opts:    opts,
	}, nil
}

// ─── Core Operations ────────────────────────────────────────────────

// Set вставляет или обновляет ключ; ключ становится самым свежим.
func (db *DB) Set(key, value string) {
	db.cache.Set(key, value)
}

// Get возвращает значение по ключу и обновляет его свежесть.
//
//	val, ok := db.Get("user:1")
func (db *DB) Get(key string) (string, bool) {
	return db.cache.Get(key)
}

// Del удаляет ключи. Возвращает кол-во реально удалённых.
//
//	db.Del("key1", "key2", "key3")
func (db *DB) Del(keys ...string) int {
	n := 0
	for _, key := range keys {
		if db.cache.Delete(key) {
			n++
		}
	}
	return n
}

// Len возвращает количество ключей в кеше.
func (db *DB) Len() int {
	return db.cache.Len()
}

// Capacity возвращает заданную ёмкость.
func (db *DB) Capacity() int {
	return db.cache.Capacity()
}

// Keys возвращает ключи от самого свежего к самому старому.
func (db *DB) Keys() []string {
	return db.cache.Keys()
}

// Stats возвращает счётчики попаданий, промахов и вытеснений.
func (db *DB) Stats() Stats {
	return db.cache.Stats()
}

// Clear удаляет все ключи.
func (db *DB) Clear() {
	db.cache.Clear()
}

// Exec выполняет одну строку протокола, как если бы она пришла по сети.
//
//	db.Exec("SET greeting hello world") // "OK"
func (db *DB) Exec(line string) string {
	return db.proc.Process(line)
}

// ─── TCP Server ─────────────────────────────────────────────────────

// ListenAndServe запускает TCP-сервер.
// Блокирующий вызов — слушает до ошибки или Close.
// После Close возвращает ErrServerClosed.
//
//	go db.ListenAndServe(":6379")
func (db *DB) ListenAndServe(addr string) error {
	srv := server.New(addr, db.proc,
		server.WithLogger(*db.opts.Logger),
		server.WithMaxConnections(db.opts.MaxConnections),
		server.WithIdleTimeout(db.opts.IdleTimeout),
	)

	db.mu.Lock()
	switch {
	case db.closed:
		db.mu.Unlock()
		return ErrServerClosed
	case db.srv != nil:
		db.mu.Unlock()
		return ErrServerRunning
	}
	db.srv = srv
	db.mu.Unlock()

	err := srv.ListenAndServe()

	// После ошибки bind или остановки можно запустить сервер заново.
	db.mu.Lock()
	if db.srv == srv {
		db.srv = nil
	}
	db.mu.Unlock()

	return err
}

// Addr возвращает адрес запущенного сервера или "".
func (db *DB) Addr() string {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.srv == nil {
		return ""
	}
	return db.srv.Addr()
}

// ─── Lifecycle ──────────────────────────────────────────────────────

// Shutdown останавливает сервер (если запущен) и монитор.
// Открытые соединения закрываются принудительно, когда истекает ctx.
func (db *DB) Shutdown(ctx context.Context) error {
	db.mu.Lock()
	db.closed = true
	srv := db.srv
	db.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	db.monitor.Stop()
	return err
}

// Close — Shutdown с таймаутом 5 секунд. Всегда вызывай через defer.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Shutdown(ctx)
}
