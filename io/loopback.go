package io

// LOOPBACK_DEFAULT_CAPACITY is the default capacity in bytes of a Loopback.
const LOOPBACK_DEFAULT_CAPACITY = 256

// Loopback implements a circular buffer that returns output bytes as input.
// It operates as a FIFO queue with a fixed capacity.
type Loopback struct {
	Capacity int // Capacity in bytes.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []byte
}

var _ Device = (*Loopback)(nil)

// Rewind resets the buffer to empty.
func (lb *Loopback) Rewind() {
	if lb.Capacity == 0 {
		lb.Capacity = LOOPBACK_DEFAULT_CAPACITY
	}

	lb.ReadIndex = 0
	lb.WriteIndex = 0
	lb.Size = 0
	lb.Data = make([]byte, lb.Capacity)
}

// Input returns the oldest byte in the buffer.
func (lb *Loopback) Input(selector uint16) (value byte, err error) {
	if lb.Size == 0 {
		err = ErrInputEmpty
		return
	}

	value = lb.Data[lb.ReadIndex]
	lb.ReadIndex++
	if lb.ReadIndex == lb.Capacity {
		lb.ReadIndex = 0
	}
	lb.Size--

	return
}

// Output queues a byte. Returns ErrDeviceFull if the buffer is at capacity.
func (lb *Loopback) Output(selector uint16, value byte) (err error) {
	if lb.Data == nil {
		lb.Rewind()
	}

	if lb.Size >= lb.Capacity {
		err = ErrDeviceFull
		return
	}

	lb.Data[lb.WriteIndex] = value

	lb.WriteIndex++
	if lb.WriteIndex == lb.Capacity {
		lb.WriteIndex = 0
	}
	lb.Size++

	return
}
