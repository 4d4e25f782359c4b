package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/controller"
	"github.com/7Nouman/LegalEase-Phase1/model"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question about the active document",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive Q&A session about the active document",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	question := strings.Join(args, " ")
	done, err := ws.SubmitQuestion(cmd.Context(), question)
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

func runChat(cmd *cobra.Command, args []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	sess := ws.Session()
	if !sess.Active() {
		return fmt.Errorf("upload a PDF first")
	}
	fmt.Printf("Chatting about %s. Empty line or Ctrl-D to quit.\n", model.Truncate(sess.DisplayName, 48))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		done, err := ws.SubmitQuestion(cmd.Context(), question)
		if err != nil {
			fmt.Fprintln(os.Stderr, legalease.Notice(err))
			continue
		}

		snap := <-done
		if snap.Status != controller.StatusSucceeded {
			// The question stays in the transcript unanswered; asking
			// again retries it.
			fmt.Fprintln(os.Stderr, legalease.Notice(snap.Err))
			continue
		}
		fmt.Println(snap.Result)
	}
	return scanner.Err()
}
