// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/debugger"
	"github.com/ezrec/blue/emulator"
	"github.com/ezrec/blue/io"
	"github.com/ezrec/blue/progs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blue",
		Short: "Blue computer emulator",
		Long:  "Pulse-accurate emulator, assembler and debugger for the 16-bit Blue computer.",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(asmCmd())
	rootCmd.AddCommand(disasmCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var settings emulator.Settings
	var verbose bool
	var switches uint16
	var input string
	var breaks []int
	var loopback bool

	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Run a built-in program, assembly source, hex listing or binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu := emulator.NewEmulator(settings)
			emu.Verbose = verbose
			emu.Switches = switches

			tape := &io.Tape{Reader: os.Stdin, Writer: os.Stdout}
			emu.Device = tape
			if loopback {
				emu.Device = &io.Loopback{}
			}

			if len(input) != 0 {
				inf, err := os.Open(input)
				if err != nil {
					return err
				}
				defer inf.Close()
				tape.Reader = inf
			} else if settings.Enabled && !loopback {
				// The console owns stdin while debugging.
				emu.Settings.ManualInput = true
			}

			err := emu.Open(args[0])
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			for _, addr := range breaks {
				err = emu.SetBreakpoint(addr)
				if err != nil {
					return err
				}
			}

			if !settings.Enabled {
				return runBatch(emu, tape)
			}

			con, err := openConsole()
			if err != nil {
				return err
			}
			defer con.Close()

			emu.Trace = con
			tape.Writer = con

			dbg := debugger.NewDebugger(emu, con)
			return dbg.Session(con)
		},
	}

	cmd.Flags().BoolVarP(&settings.Enabled, "debug", "d", false, "start the interactive debugger")
	cmd.Flags().BoolVarP(&settings.PrintRegisters, "print-registers", "p", false, "print the registers after every cycle, with --debug")
	cmd.Flags().BoolVarP(&settings.ManualInput, "manual-input", "m", false, "prompt for every INP byte")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().Uint16Var(&switches, "switches", 0, "console switch register value")
	cmd.Flags().StringVarP(&input, "input", "i", "", "hex byte file read by INP")
	cmd.Flags().BoolVar(&loopback, "loopback", false, "INP reads back the bytes written by OUT")
	cmd.Flags().IntSliceVarP(&breaks, "break", "b", nil, "breakpoint address, with --debug (repeatable)")

	return cmd
}

// runBatch runs the emulator to completion without the debugger.
func runBatch(emu *emulator.Emulator, tape *io.Tape) (err error) {
	if emu.Settings.ManualInput {
		var con *console
		con, err = openConsole()
		if err != nil {
			return
		}
		defer con.Close()

		tape.Writer = con
		dbg := debugger.NewDebugger(emu, con)
		_, err = dbg.Resume(con)
	} else {
		_, err = emu.Run()
	}
	if err != nil {
		return
	}

	if emu.Overflows != 0 {
		log.Printf("blue: %d arithmetic overflows", emu.Overflows)
	}

	return
}

func asmCmd() *cobra.Command {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "asm <source>",
		Short: "Assemble a source file into a hex listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inf, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer inf.Close()

			emu := emulator.NewEmulator(emulator.Settings{})
			emu.Verbose = verbose
			prog, err := emu.Assembler().Parse(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			ouf := cmd.OutOrStdout()
			if len(output) != 0 && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				ouf = file
			}

			return emulator.WriteHex(ouf, prog.Binary())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "hex listing output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func disasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu := emulator.NewEmulator(emulator.Settings{})
			err := emu.Open(args[0])
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			// Stop after the last non-zero word.
			last := -1
			for addr, value := range emu.Cpu.Memory() {
				if value != 0 {
					last = int(addr)
				}
			}

			ouf := cmd.OutOrStdout()
			for addr, value := range emu.Cpu.Memory() {
				if int(addr) > last {
					break
				}
				code := cpu.Code(value)
				text := code.String()
				if dbg := emu.Program.Debug(addr); dbg.Line != nil && dbg.Index == 0 {
					text = fmt.Sprintf("%-24v ; line %d", text, dbg.LineNo)
				}
				fmt.Fprintf(ouf, "%03x: %04x  %v\n", addr, value, text)
			}

			return nil
		},
	}

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in programs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range progs.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	return cmd
}
