package monitor

import (
	"time"

	"redislite/internal/metrics"
)

// Start снимает первый срез сразу и запускает тикер.
func (m *Monitor) Start() {
	m.sample()

	if m.interval <= 0 {
		close(m.doneCh)
		return
	}
	go m.run()
}

// Stop останавливает монитор и ждёт выхода горутины. Повторный вызов безопасен.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	<-m.doneCh
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sample()
		case <-m.stopCh:
			m.sample()
			return
		}
	}
}

func (m *Monitor) sample() {
	st := m.src.Stats()

	metrics.CacheEntries.Set(float64(st.Size))
	metrics.CacheCapacity.Set(float64(st.Capacity))

	m.log.Debug().
		Int("size", st.Size).
		Int("capacity", st.Capacity).
		Uint64("hits", st.Hits).
		Uint64("misses", st.Misses).
		Uint64("evictions", st.Evictions).
		Msg("cache stats")
}
