package command

// set обрабатывает SET key value.
func (p *Processor) set(c Set) string {
	p.store.Set(c.Key, c.Value)
	return respOK
}
