package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/amplifier"
)

// amplifyCmd represents the amplify command
var amplifyCmd = &cobra.Command{
	Use:   "amplify PROGRAM",
	Short: "Find the phase settings giving the strongest amplifier signal.",
	Long: `Run one copy of the program per phase setting as a chain of amplifiers,
trying every ordering of the phases, and print the strongest signal.
With --feedback the last amplifier feeds the first until all halt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram(args[0])
		if err != nil {
			return
		}

		feedback, _ := cmd.Flags().GetBool("feedback")
		text, _ := cmd.Flags().GetString("phases")
		if !cmd.Flags().Changed("phases") && feedback {
			text = "5,6,7,8,9"
		}
		phases, err := parseValues(text)
		if err != nil {
			return
		}

		chain := &amplifier.Chain{
			Verbose: log.IsLevelEnabled(log.DebugLevel),
			Image:   prog.Image(),
			Set:     codeSet(cmd),
		}

		var best amplifier.Result
		if feedback {
			best, err = chain.MaxFeedback(phases)
		} else {
			best, err = chain.MaxSeries(phases)
		}
		if err != nil {
			return
		}

		log.WithField("phases", best.Phases).Debug("best")
		fmt.Println(best.Signal)

		return
	},
}

func init() {
	rootCmd.AddCommand(amplifyCmd)

	amplifyCmd.Flags().Bool("feedback", false, "Connect the last amplifier to the first")
	amplifyCmd.Flags().String("phases", "0,1,2,3,4", "Comma separated phase settings")
}
