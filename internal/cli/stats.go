package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	st, err := s.Stats(cmd.Context(), storePath())
	if err != nil {
		fail("stats", err)
	}

	printJSON(st)
}
