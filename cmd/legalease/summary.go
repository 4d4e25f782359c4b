package main

import (
	"fmt"

	"github.com/spf13/cobra"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/controller"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the active document",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	done, err := ws.Summarize(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s", legalease.Notice(err))
	}

	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		return fmt.Errorf("%s", legalease.Notice(snap.Err))
	}

	fmt.Println(snap.Result)
	return nil
}
