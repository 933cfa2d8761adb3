package command

import (
	"strings"
	"unicode"
)

// Parse разбирает строку запроса: VERB [KEY [VALUE...]].
// Глагол без учёта регистра, VALUE — остаток строки после KEY как есть.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Empty{}
	}

	verb, rest := nextToken(line)
	key, value := nextToken(rest)

	switch strings.ToUpper(verb) {
	case "GET":
		if key == "" {
			return Invalid{Verb: "GET", Usage: "a key"}
		}
		return Get{Key: key}
	case "SET":
		if key == "" || value == "" {
			return Invalid{Verb: "SET", Usage: "a key and value"}
		}
		return Set{Key: key, Value: value}
	case "DEL":
		if key == "" {
			return Invalid{Verb: "DEL", Usage: "a key"}
		}
		return Del{Key: key}
	case "PING":
		return Ping{}
	case "INFO":
		return Info{}
	default:
		return Unknown{Verb: verb}
	}
}

// nextToken отрезает первое слово и пробелы после него.
func nextToken(s string) (token, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
