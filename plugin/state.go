package plugin

// GetState serializes the current parameter values.
func (p *Processor) GetState() ([]byte, error) {
	return p.params.MarshalState()
}

// SetState restores parameter values written by GetState. Unknown
// parameters are ignored.
func (p *Processor) SetState(data []byte) error {
	return p.params.UnmarshalState(data)
}
