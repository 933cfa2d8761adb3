package command

import "strconv"

// info обрабатывает INFO: "Cache size: <size>/<capacity>".
func (p *Processor) info() string {
	return "Cache size: " + strconv.Itoa(p.store.Len()) + "/" + strconv.Itoa(p.store.Capacity())
}
