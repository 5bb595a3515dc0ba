package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm SOURCE",
	Short: "Assemble a source file into a memory image.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		output, _ := cmd.Flags().GetString("output")
		ouf := os.Stdout
		if output != "-" {
			ouf, err = os.Create(output)
			if err != nil {
				return
			}
			defer ouf.Close()
		}

		return io.FormatImage(ouf, prog.Image())
	},
}

// disCmd represents the dis command
var disCmd = &cobra.Command{
	Use:   "dis PROGRAM",
	Short: "List a memory image as assembler text.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		for ip, text := range cpu.Disassemble(prog.Image()) {
			fmt.Printf("%5d: %v\n", ip, text)
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
	rootCmd.AddCommand(disCmd)

	asmCmd.Flags().StringP("output", "o", "-", "Memory image output")
}
