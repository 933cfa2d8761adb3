package command

// get обрабатывает GET key.
func (p *Processor) get(c Get) string {
	value, found := p.store.Get(c.Key)
	if !found {
		return respNull
	}
	return "OK: " + value
}
