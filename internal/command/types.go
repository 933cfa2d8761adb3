package command

// Command — разобранный запрос. Набор вариантов закрыт:
// isCommand не экспортирован, новые типы можно добавить только здесь.
type Command interface {
	// Name — имя глагола для логов и метрик.
	Name() string
	isCommand()
}

// Get — GET key.
type Get struct{ Key string }

// Set — SET key value. Value может содержать пробелы.
type Set struct{ Key, Value string }

// Del — DEL key.
type Del struct{ Key string }

// Ping — PING.
type Ping struct{}

// Info — INFO.
type Info struct{}

// Empty — пустая строка.
type Empty struct{}

// Unknown — неизвестный глагол.
type Unknown struct{ Verb string }

// Invalid — известный глагол без обязательных аргументов.
// Usage дописывается к "ERROR: <Verb> requires ".
type Invalid struct{ Verb, Usage string }

func (Get) Name() string     { return "GET" }
func (Set) Name() string     { return "SET" }
func (Del) Name() string     { return "DEL" }
func (Ping) Name() string    { return "PING" }
func (Info) Name() string    { return "INFO" }
func (Empty) Name() string   { return "EMPTY" }
func (Unknown) Name() string { return "UNKNOWN" }
func (c Invalid) Name() string {
	return c.Verb
}

func (Get) isCommand()     {}
func (Set) isCommand()     {}
func (Del) isCommand()     {}
func (Ping) isCommand()    {}
func (Info) isCommand()    {}
func (Empty) isCommand()   {}
func (Unknown) isCommand() {}
func (Invalid) isCommand() {}

// Store — то, что процессору нужно от кеша.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string) bool
	Len() int
	Capacity() int
}

// Готовые ответы (без перевода строки — его добавляет соединение).
const (
	respOK   = "OK"
	respNull = "NULL"
	respPong = "PONG"

	respErrPrefix  = "ERROR: "
	respErrEmpty   = "ERROR: Empty command"
	respErrUnknown = "ERROR: Unknown command"
)
