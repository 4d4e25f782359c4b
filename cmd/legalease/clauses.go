package main

import (
	"fmt"

	"github.com/spf13/cobra"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/controller"
)

var clausesCmd = &cobra.Command{
	Use:   "clauses",
	Short: "Explain each clause with a risk badge",
	RunE:  runClauses,
}

func init() {
	rootCmd.AddCommand(clausesCmd)
}

func runClauses(cmd *cobra.Command, args []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	done, err := ws.ExplainClauses(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s", legalease.Notice(err))
	}

	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		return fmt.Errorf("%s", legalease.Notice(snap.Err))
	}

	if len(snap.Result) == 0 {
		fmt.Println("No clauses found.")
		return nil
	}

	for _, clause := range snap.Result {
		badge := clause.Badge()
		if badge != "" {
			fmt.Printf("Clause %d  %s\n", clause.Index+1, badge)
		} else {
			fmt.Printf("Clause %d\n", clause.Index+1)
		}
		fmt.Println(clause.Analysis)
		fmt.Println()
	}
	return nil
}
