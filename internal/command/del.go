package command

// del обрабатывает DEL key. NULL — ключа не было.
func (p *Processor) del(c Del) string {
	if !p.store.Delete(c.Key) {
		return respNull
	}
	return respOK
}
