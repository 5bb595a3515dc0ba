package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/search"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search PROGRAM",
	Short: "Find the noun and verb that produce a target result.",
	Long: `Find the noun and verb, injected at addresses 1 and 2, for which the program
leaves the target value at address 0. Prints 100 * noun + verb.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		target, _ := cmd.Flags().GetInt64("target")
		limit, _ := cmd.Flags().GetInt64("limit")

		sr := &search.Searcher{
			Verbose: log.IsLevelEnabled(log.DebugLevel),
			Rom:     io.Rom{Data: prog.Image()},
			Set:     codeSet(cmd),
			Limit:   limit,
		}

		noun, verb, err := sr.NounVerb(target)
		if err != nil {
			return
		}

		log.WithFields(log.Fields{"noun": noun, "verb": verb}).Debug("found")
		fmt.Println(100*noun + verb)

		return
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Int64P("target", "t", 19690720, "Wanted value at address 0")
	searchCmd.Flags().Int64("limit", search.DEFAULT_LIMIT, "Largest noun and verb to try")
}
