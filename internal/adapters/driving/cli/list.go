package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rostlab/tmvis/internal/core/domain"
)

var (
	listTaxon     string
	listDomain    string
	listClade     string
	listTopology  string
	listSignal    bool
	listMinLength int
	listMaxLength int
	listLimit     int
	listRandom    bool
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List proteins in the local store",
	Long: `Lists stored proteins matching the given filters.

Organisms are selected by taxon id (default 9606, human) or, when --domain or
--clade is given without --taxon, by super kingdom and clade. The length
filter is off while it spans the default 16..5500. --random ignores every
other filter and returns a random selection.

Topology values:
  all          - any protein
  both         - alpha helices and beta strands
  alpha-helix  - at least one alpha helix
  beta-strand  - at least one beta strand, signal peptide as per --signal`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	defaults := domain.DefaultProteinFilter()
	listCmd.Flags().StringVar(&listTaxon, "taxon", defaults.TaxonID, "NCBI taxon id")
	listCmd.Flags().StringVar(&listDomain, "domain", "", "super kingdom (e.g. Eukaryota)")
	listCmd.Flags().StringVar(&listClade, "clade", "", "clade within the super kingdom")
	listCmd.Flags().StringVarP(&listTopology, "topology", "t", string(defaults.Topology),
		"all, both, alpha-helix or beta-strand")
	listCmd.Flags().BoolVar(&listSignal, "signal", false, "require a signal peptide (beta-strand only)")
	listCmd.Flags().IntVar(&listMinLength, "min-length", defaults.MinLength, "minimum sequence length")
	listCmd.Flags().IntVar(&listMaxLength, "max-length", defaults.MaxLength, "maximum sequence length")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", defaults.Limit, "maximum number of proteins")
	listCmd.Flags().BoolVar(&listRandom, "random", false, "random selection, ignoring other filters")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output proteins as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if proteinService == nil {
		return fmt.Errorf("protein %w", errNotConfigured)
	}

	topology, err := domain.ParseTopology(listTopology)
	if err != nil {
		return err
	}

	filter := domain.ProteinFilter{
		TaxonID:       listTaxon,
		SuperKingdom:  listDomain,
		Clade:         listClade,
		Topology:      topology,
		SignalPeptide: listSignal,
		MinLength:     listMinLength,
		MaxLength:     listMaxLength,
		Limit:         listLimit,
		Random:        listRandom,
	}
	if !cmd.Flags().Changed("taxon") && (listDomain != "" || listClade != "") {
		filter.TaxonID = ""
	}

	proteins, err := proteinService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list proteins: %w", err)
	}

	if listJSON {
		return outputProteinsJSON(cmd, proteins)
	}
	return outputProteinsTable(cmd, proteins)
}

type proteinRow struct {
	Accession    string  `json:"accession"`
	UniProtID    string  `json:"uniprot_id"`
	Length       int     `json:"length"`
	Organism     string  `json:"organism"`
	TaxonID      string  `json:"taxon_id"`
	HelixPercent float64 `json:"helix_percent"`
	StrandPct    float64 `json:"strand_percent"`
	Signal       bool    `json:"signal_peptide"`
}

func toProteinRows(proteins []domain.Protein) []proteinRow {
	rows := make([]proteinRow, len(proteins))
	for i := range proteins {
		p := &proteins[i]
		rows[i] = proteinRow{
			Accession:    p.Accession,
			UniProtID:    p.UniProtID,
			Length:       p.Length(),
			Organism:     p.Organism.Name,
			TaxonID:      p.Organism.TaxonID,
			HelixPercent: p.TMInfo.HelixPercent,
			StrandPct:    p.TMInfo.StrandPercent,
			Signal:       p.TMInfo.HasSignal,
		}
	}
	return rows
}

func outputProteinsJSON(cmd *cobra.Command, proteins []domain.Protein) error {
	data, err := json.MarshalIndent(toProteinRows(proteins), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proteins: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputProteinsTable(cmd *cobra.Command, proteins []domain.Protein) error {
	if len(proteins) == 0 {
		cmd.Println("No proteins found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACCESSION\tENTRY\tLENGTH\tORGANISM\tHELIX %\tSTRAND %\tSIGNAL")
	for _, r := range toProteinRows(proteins) {
		signal := "no"
		if r.Signal {
			signal = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.1f\t%.1f\t%s\n",
			r.Accession, r.UniProtID, r.Length, r.Organism, r.HelixPercent, r.StrandPct, signal)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("\n%d protein(s)\n", len(proteins))
	return nil
}
