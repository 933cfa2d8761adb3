package monitor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	storage "redislite/internal/storage/cache"
)

// Source — то, что монитору нужно от кеша.
type Source interface {
	Stats() storage.Stats
}

// Monitor — фоновый сборщик статистики кеша: раз в interval
// обновляет gauge-метрики и пишет строку в debug-лог.
type Monitor struct {
	src      Source
	interval time.Duration
	log      zerolog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}
