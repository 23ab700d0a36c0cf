package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rostlab/tmvis/internal/core/domain"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Prints the tmvis version, the Go runtime, the annotation sources in
display order and, when configured, the store backend and remote lookup state.`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	if versionShort {
		cmd.Println(version)
		return
	}

	cmd.Printf("tmvis version %s\n", version)
	cmd.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ids := make([]string, 0, len(domain.Sources()))
	for _, s := range domain.Sources() {
		ids = append(ids, string(s))
	}
	cmd.Printf("  sources: %s\n", strings.Join(ids, ", "))

	if settingsService == nil {
		return
	}
	settings, err := settingsService.Get()
	if err != nil {
		return
	}
	remote := "off"
	if settings.Remote.Enabled {
		remote = "on"
	}
	cmd.Printf("  store:   %s\n", settings.Store.Backend)
	cmd.Printf("  remote:  %s\n", remote)
}
