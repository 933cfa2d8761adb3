package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"redislite/internal/metrics"
)

// Processor выполняет команды над Store и форматирует ответ.
// Своего состояния между соединениями не хранит.
type Processor struct {
	store Store
	log   zerolog.Logger
}

// NewProcessor создаёт процессор.
func NewProcessor(store Store, logger zerolog.Logger) *Processor {
	return &Processor{
		store: store,
		log:   logger,
	}
}

// Process разбирает и выполняет одну строку запроса.
func (p *Processor) Process(line string) string {
	return p.Execute(Parse(line))
}

// Execute выполняет команду. Паника внутри превращается в "ERROR: <msg>",
// соединение при этом продолжает работать.
func (p *Processor) Execute(cmd Command) (resp string) {
	name := cmd.Name()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Str("verb", name).
				Interface("panic", r).
				Msg("command execution failed")
			resp = respErrPrefix + panicMessage(r)
		}

		metrics.CommandsTotal.WithLabelValues(name).Inc()
		metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if strings.HasPrefix(resp, respErrPrefix) {
			metrics.CommandErrors.WithLabelValues(name).Inc()
		}
	}()

	switch c := cmd.(type) {
	case Get:
		return p.get(c)
	case Set:
		return p.set(c)
	case Del:
		return p.del(c)
	case Ping:
		return respPong
	case Info:
		return p.info()
	case Empty:
		return respErrEmpty
	case Invalid:
		return respErrPrefix + c.Verb + " requires " + c.Usage
	case Unknown:
		return respErrUnknown
	default:
		panic(fmt.Sprintf("unhandled command %T", cmd))
	}
}

// panicMessage — текст паники в одну строку: ответ не должен
// разрываться переводом строки.
func panicMessage(r any) string {
	var msg string
	if err, ok := r.(error); ok {
		msg = err.Error()
	} else {
		msg = fmt.Sprint(r)
	}
	return eolReplacer.Replace(msg)
}

var eolReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
