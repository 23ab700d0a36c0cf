package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/report"
)

var legendScheme string

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the colour legend",
	Long: `Prints the topology codes with their orientation and colour, or the
AlphaFold pLDDT confidence bands with --scheme plddt.`,
	Args: cobra.NoArgs,
	RunE: runLegend,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List annotation sources",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	legendCmd.Flags().StringVar(&legendScheme, "scheme", string(colourmap.SchemeTopology), "topology or plddt")
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runLegend(cmd *cobra.Command, _ []string) error {
	scheme, err := colourmap.ParseScheme(legendScheme)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if scheme == colourmap.SchemeConfidence {
		fmt.Fprintln(w, "COLOUR\tCONFIDENCE")
		for _, b := range colourmap.ConfidenceBands() {
			fmt.Fprintf(w, "%s\t%s\n", b.Colour.Name, b.Label)
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "CODE\tTOPOLOGY\tORIENTATION\tCOLOUR")
	for _, e := range append(colourmap.TopologyLegend(), colourmap.SpanLegend()...) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", string(e.Code), e.Topology, e.Orientation, e.Colour.Name)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Println()
	cmd.Println(report.TMbedCaveat)
	return nil
}

func runSources(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, info := range domain.SourceInfos() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, info.DisplayName, info.Description)
	}
	return w.Flush()
}
