package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/adapters/driven/storage/memory"
	"github.com/rostlab/tmvis/internal/core/services"
	"github.com/rostlab/tmvis/internal/normalisers/membranome"
	"github.com/rostlab/tmvis/internal/normalisers/predicted"
	"github.com/rostlab/tmvis/internal/normalisers/records"
	"github.com/rostlab/tmvis/internal/normalisers/tmalphafold"
	"github.com/rostlab/tmvis/internal/normalisers/topdb"
	"github.com/rostlab/tmvis/internal/normalisers/uniprot"
)

const testDump = `{"_id":"P13224","uniprot_id":"GP1BB_HUMAN","sequence":"MGSGPRGALSLLLLLLAPPSRPAAG","organism":{"taxon_id":9606,"name":"Homo sapiens","super_kingdom":"Eukaryota","clade":"Metazoa"},"predictions":{"transmembrane":"SSSSiiiiiHHHHHHHHHHHooooo"},"topdb":{"TopDB_Entry":"IIIIIIIIIMMMMMMMMMMMOOOOO"},"membranomedb":{"tm_seq_start":"10","tm_seq_end":"20"}}
{"_id":"P02945","uniprot_id":"BACR_HALSA","sequence":"MLELLPTAVEGVSQAQITGRPEWIWLALGTALMGLGTLYFLVKGMGVSDPDAKKFYAITTLVPAIAFTMYLSMLLGYGLTMVPFGGEQNPIYWARYADWLFTTPLLLLDLALLVDADQGTILALVGADGIMIGTGLVGALTKVYSYRFVWWAISTAAMLYILYVLFFGFTSKAESMRPEVASTFKVLRNVTVVLWSAYPVVWLIGSEGAGIVPLNIETLLFMVLDVSAKVGFGLILLRSRAIFGEAEAPEPSAGDGAAATSD","organism":{"taxon_id":64091,"name":"Halobacterium salinarum","super_kingdom":"Archaea"}}
`

// setupTestServices wires the real services over an in-memory store seeded
// with testDump. The returned func restores the previous services.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store := memory.NewProteinStore()
	registry := services.NewNormaliserRegistry(
		predicted.New(),
		topdb.New(),
		membranome.New(),
		uniprot.New(),
		tmalphafold.New(),
	)
	proteins := services.NewProteinService(store)
	summary, err := proteins.Import(context.Background(), strings.NewReader(testDump))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)

	prevAnnotation, prevProtein, prevSettings := annotationService, proteinService, settingsService
	SetServices(Services{
		Annotation: services.NewAnnotationService(store, registry, records.New()),
		Protein:    proteins,
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
	})

	return func() {
		annotationService, proteinService, settingsService = prevAnnotation, prevProtein, prevSettings
	}
}

// resetFlags restores every flag of cmd to its default.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	resetFlags(cmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
