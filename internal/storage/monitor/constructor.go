package monitor

import (
	"time"

	"github.com/rs/zerolog"
)

// New создаёт монитор. interval <= 0 — Start ничего не запускает.
func New(src Source, interval time.Duration, logger zerolog.Logger) *Monitor {
	return &Monitor{
		src:      src,
		interval: interval,
		log:      logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}
