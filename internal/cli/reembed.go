package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reembed",
		Short: "Embed all memories lacking a vector for the current model",
		Long:  "Bulk-compute embeddings for every memory without a vector under the configured model. Run after switching embedding models.",
		Run:   runReembed,
	}

	RootCmd.AddCommand(cmd)
}

func runReembed(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	count, err := s.ReembedAll(cmd.Context())
	if err != nil {
		fail("reembed", err)
	}

	fmt.Printf(`{"ok":true,"reembedded":%d}`+"\n", count)
}
