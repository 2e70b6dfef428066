package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/store"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all memories as JSON",
		Long:  "Write a JSON snapshot of every memory, archived included, to stdout.",
		Run:   runExport,
	}
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import memories from a JSON export",
		Long:  "Re-add memories from an export file (or stdin). Imported memories get new ids.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	snap, err := s.ExportAll(cmd.Context())
	if err != nil {
		fail("export", err)
	}

	printJSON(snap)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fail("import", err)
		}
		defer f.Close()
		r = f
	}

	var snap store.Export
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		fail("import: parse export", err)
	}

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	n, err := s.Import(cmd.Context(), snap.Memories)
	if err != nil {
		fail("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", n)
}
