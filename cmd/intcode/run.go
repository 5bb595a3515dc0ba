package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Run a program to completion.",
	Long: `Run a program to completion, printing each output value on its own line.
Input values are taken from --input if given, otherwise from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		emu := emulator.NewEmulator()
		emu.Program = prog
		emu.Set = codeSet(cmd)
		emu.Verbose = log.IsLevelEnabled(log.DebugLevel)
		emu.Log = log.StandardLogger()

		if cmd.Flags().Changed("noun") {
			noun, _ := cmd.Flags().GetInt64("noun")
			emu.Patches = append(emu.Patches, [2]int64{1, noun})
		}
		if cmd.Flags().Changed("verb") {
			verb, _ := cmd.Flags().GetInt64("verb")
			emu.Patches = append(emu.Patches, [2]int64{2, verb})
		}

		input, _ := cmd.Flags().GetString("input")
		if cmd.Flags().Changed("input") {
			emu.Tape.Input = strings.NewReader(input)
		} else {
			emu.Tape.Input = os.Stdin
		}
		emu.Tape.Output = os.Stdout

		err = emu.Reset()
		if err != nil {
			return
		}
		defer emu.Close()

		err = emu.Run()
		if err != nil {
			return
		}

		log.WithField("ticks", emu.Ticks()).Debug("halted")

		dump, _ := cmd.Flags().GetBool("dump")
		if dump {
			fmt.Fprint(os.Stdout, "memory: ")
			err = io.FormatImage(os.Stdout, emu.Memory())
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Comma separated input values")
	runCmd.Flags().Int64("noun", 0, "Value injected at address 1 before the run")
	runCmd.Flags().Int64("verb", 0, "Value injected at address 2 before the run")
	runCmd.Flags().Bool("dump", false, "Print the final memory image")
}
