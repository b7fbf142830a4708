package io

// Script supplies a fixed list of input bytes and records every output.
type Script struct {
	Inputs  []byte // Bytes returned by successive INPs.
	Outputs []byte // Bytes presented by OUTs, in order.

	Selectors []uint16 // Selector of each recorded output.

	readIndex int
}

var _ Device = (*Script)(nil)

// Rewind restarts the inputs and forgets the outputs.
func (sc *Script) Rewind() {
	sc.readIndex = 0
	sc.Outputs = nil
	sc.Selectors = nil
}

func (sc *Script) Input(selector uint16) (value byte, err error) {
	if sc.readIndex >= len(sc.Inputs) {
		err = ErrInputEmpty
		return
	}

	value = sc.Inputs[sc.readIndex]
	sc.readIndex++

	return
}

func (sc *Script) Output(selector uint16, value byte) (err error) {
	sc.Outputs = append(sc.Outputs, value)
	sc.Selectors = append(sc.Selectors, selector)
	return
}
