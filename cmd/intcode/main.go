// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "intcode",
	Short:         "Assemble, run, and search intcode programs.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		log.SetFormatter(&log.TextFormatter{
			DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().Bool("basic", false, "Only decode add, mul and halt, without parameter modes")
}

// codeSet returns the instruction set selected by the flags.
func codeSet(cmd *cobra.Command) cpu.CodeSet {
	basic, _ := cmd.Flags().GetBool("basic")
	if basic {
		return cpu.SET_BASIC
	}
	return cpu.SET_FULL
}

// loadProgram reads a program from a file, or stdin for "-".
// Files ending in .asm are assembled, anything else is a memory image.
func loadProgram(filename string) (prog *cpu.Program, err error) {
	inf := os.Stdin
	if filename != "-" {
		inf, err = os.Open(filename)
		if err != nil {
			return
		}
		defer inf.Close()
	}

	if strings.EqualFold(filepath.Ext(filename), ".asm") {
		asm := &cpu.Assembler{Verbose: log.IsLevelEnabled(log.DebugLevel)}
		return asm.Parse(inf)
	}

	rom := &io.Rom{}
	err = rom.Load(inf)
	if err != nil {
		return
	}

	prog = cpu.NewProgram(rom.Data)
	return
}

// parseValues parses a comma separated list of integers.
func parseValues(text string) (values []int64, err error) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}
	return io.ParseImage(strings.NewReader(text))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
