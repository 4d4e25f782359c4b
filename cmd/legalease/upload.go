package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/controller"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file.pdf]",
	Short: "Upload a PDF and make it the active document",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Show the active document",
	RunE:  runDoc,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(docCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	done, err := ws.UploadPDF(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("%s", legalease.Notice(err))
	}

	snap := <-done
	if snap.Status != controller.StatusSucceeded {
		return fmt.Errorf("%s", legalease.Notice(snap.Err))
	}

	fmt.Printf("Uploaded %s\n", snap.Result.DisplayName)
	fmt.Printf("Document: %s\n", snap.Result.DocumentID)
	return nil
}

func runDoc(cmd *cobra.Command, args []string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	sess := ws.Session()
	if !sess.Active() {
		fmt.Println("No document uploaded yet.")
		return nil
	}
	fmt.Printf("Document: %s\n", sess.DocumentID)
	fmt.Printf("Name:     %s\n", sess.DisplayName)
	return nil
}
