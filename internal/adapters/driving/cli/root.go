// Package cli provides the cobra command tree for tmvis.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rostlab/tmvis/internal/core/ports/driving"
	"github.com/rostlab/tmvis/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Services injected by the entry point.
var (
	annotationService driving.AnnotationService
	proteinService    driving.ProteinService
	settingsService   driving.SettingsService
)

var errNotConfigured = errors.New("service not configured")

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tmvis",
	Short: "Browse membrane protein topology annotations",
	Long: `tmvis gathers transmembrane annotations for a protein from a local
store (TMbed predictions, TopDB, Membranome) and from UniProt and
TmAlphaFold, and shows them residue by residue next to the sequence.

Proteins are identified by UniProt accession (P12345) or entry name
(INSR_HUMAN).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services groups the driving ports the commands use.
type Services struct {
	Annotation driving.AnnotationService
	Protein    driving.ProteinService
	Settings   driving.SettingsService
}

// SetServices injects the application services.
func SetServices(s Services) {
	annotationService = s.Annotation
	proteinService = s.Protein
	settingsService = s.Settings
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log lookup progress to stderr")
}
