package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search memories by keyword",
		Long:  "Search memory content. Every whitespace-split token must occur (case-insensitive); results are chronological.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runFind,
	}

	addListFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runFind(cmd *cobra.Command, args []string) {
	f, p := listOptions(cmd)
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	res, err := s.Find(cmd.Context(), query, f, p)
	if err != nil {
		fail("find", err)
	}

	printList(res)
}
