package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/report"
)

var (
	showJSON       bool
	showOffline    bool
	showStructure  bool
	showSaveModel  string
	showScheme     string
	showRender     string
	showSpin       bool
	showBlockWidth int
	showNoColour   bool
)

var showCmd = &cobra.Command{
	Use:   "show [accession|entry-name]",
	Short: "Show membrane annotations for a protein",
	Long: `Collects every available annotation for a protein and prints the
summary, the residue table, the colour legend and links for further analysis.

Sources that cannot be reached are reported but never fail the command.

Examples:
  tmvis show P02945
  tmvis show BACR_HALSA --offline
  tmvis show P02945 --structure --save-model bacr.pdb
  tmvis show P02945 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the report as JSON")
	showCmd.Flags().BoolVar(&showOffline, "offline", false, "use the local store only")
	showCmd.Flags().BoolVar(&showStructure, "structure", false, "fetch the AlphaFold model")
	showCmd.Flags().StringVar(&showSaveModel, "save-model", "", "write the AlphaFold model (PDB) to this file")
	showCmd.Flags().StringVar(&showScheme, "scheme", string(colourmap.SchemeTopology), "colour scheme: topology or plddt")
	showCmd.Flags().StringVar(&showRender, "render", string(colourmap.RenderCartoon),
		"structure style: cartoon, line, cross, stick or sphere")
	showCmd.Flags().BoolVar(&showSpin, "spin", false, "spin the structure in the viewer")
	showCmd.Flags().IntVarP(&showBlockWidth, "block-width", "w", report.DefaultBlockWidth, "residues per table block")
	showCmd.Flags().BoolVar(&showNoColour, "no-colour", false, "disable coloured output")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return fmt.Errorf("annotation %w", errNotConfigured)
	}

	scheme, err := colourmap.ParseScheme(showScheme)
	if err != nil {
		return err
	}
	render, err := colourmap.ParseRender(showRender)
	if err != nil {
		return err
	}

	opts := domain.LookupOptions{
		Remote:    !showOffline,
		Structure: showStructure || showSaveModel != "",
	}

	rep, err := annotationService.Collect(cmd.Context(), args[0], opts)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no protein matches %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if showSaveModel != "" {
		if err := saveModel(rep, showSaveModel); err != nil {
			return err
		}
	}

	if showJSON {
		style := colourmap.NewViewerStyle(rep.Annotation, scheme, render, showSpin)
		data, err := json.MarshalIndent(report.NewDocument(rep, &style), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	renderer := report.NewRenderer(report.Options{
		Colour:     !showNoColour && isTerminal(cmd.OutOrStdout()),
		Scheme:     scheme,
		BlockWidth: showBlockWidth,
	})
	if err := renderer.Render(cmd.OutOrStdout(), rep); err != nil {
		return err
	}
	if showSaveModel != "" {
		cmd.Printf("\nModel written to %s\n", showSaveModel)
	}
	return nil
}

func saveModel(rep *domain.ProteinReport, path string) error {
	if rep.Structure == nil || rep.Structure.PDB == "" {
		return fmt.Errorf("no AlphaFold model available for %s", rep.Accession())
	}
	if err := os.WriteFile(path, []byte(rep.Structure.PDB), 0o600); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
