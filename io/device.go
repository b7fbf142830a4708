// Package io provides the devices that service the Blue's INP and OUT
// instructions. A single device answers every selector on the bus.
package io

// Device defines the interface for a Blue I/O device.
//
// The selector is the 12-bit address field of the INP or OUT that opened the
// transfer, latched in DSL.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Input returns the next byte for an INP.
	Input(selector uint16) (value byte, err error)
	// Output accepts the byte presented by an OUT.
	Output(selector uint16, value byte) (err error)
}
