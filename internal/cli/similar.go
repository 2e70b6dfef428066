package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "similar <query>",
		Short: "Search memories by meaning",
		Long:  "Rank memories by embedding similarity to the query. Requires a configured embedding provider.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSimilar,
	}

	addListFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runSimilar(cmd *cobra.Command, args []string) {
	f, p := listOptions(cmd)
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	res, err := s.Similar(cmd.Context(), query, f, p)
	if err != nil {
		fail("similar", err)
	}

	if formatFlag == "text" {
		for _, r := range res.Results {
			fmt.Printf("%.4f  %s\n", r.Score, memoryLine(r.Memory))
		}
		fmt.Printf("total %d, remaining %d\n", res.Total, res.Remaining)
		return
	}
	printJSON(res)
}
