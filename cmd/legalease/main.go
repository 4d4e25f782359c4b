// LegalEase - plain-English legal document analysis
//
// Client for the LegalEase analysis service: upload a legal PDF, then pull a
// summary, per-clause risk explanations, or chat about the document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/internal/config"
)

var (
	version    = "dev"
	serviceURL string
)

var rootCmd = &cobra.Command{
	Use:   "legalease",
	Short: "LegalEase - plain-English legal document analysis",
	Long: `LegalEase analyzes legal PDFs through a remote analysis service.

  legalease upload contract.pdf    Upload a PDF and make it the active document
  legalease doc                    Show the active document
  legalease summary                Summarize the active document
  legalease clauses                Explain each clause with a risk badge
  legalease ask "What is the term?"  Ask one question
  legalease chat                   Interactive Q&A session
  legalease serve                  Local HTTP gateway for a browser UI`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service", "",
		"analysis service URL (overrides LEGALEASE_SERVICE_URL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newWorkspace builds a Workspace from the environment plus CLI overrides.
func newWorkspace() (*legalease.Workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if serviceURL != "" {
		cfg.ServiceURL = serviceURL
	}

	return legalease.NewBuilder().
		WithConfig(legalease.Config{
			ServiceURL:   cfg.ServiceURL,
			DataDir:      cfg.DataDir,
			DatabasePath: cfg.DatabasePath,
		}).
		Build()
}
