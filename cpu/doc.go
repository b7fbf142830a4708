// Package cpu implements the instruction cycle engine and assembler for the
// Blue computer.
//
// The Blue has ten 16-bit registers (PC, A, Z, SR, MAR, MBR, IR, DSL, DIL and
// DOL), 4096 words of memory, and a sixteen instruction set encoded as a
// 4-bit opcode followed by a 12-bit address. Every instruction takes one
// fetch and one execute phase of eight clock pulses each; the engine is
// advanced one pulse at a time so the register transfers of every pulse can
// be observed.
//
// Input and output are a blocking handshake with the caller: INP and OUT
// stall the execute phase until CompleteInput or CompleteOutput is called.
//
// The assembler accepts the mnemonic form of the instruction set, with
// labels, equates and compile-time expression evaluation.
package cpu
