package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show open tasks and recent memories",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	summary, err := s.StatusSummary(cmd.Context())
	if err != nil {
		fail("status", err)
	}

	if formatFlag == "text" {
		fmt.Printf("open tasks (%d):\n", len(summary.OpenTasks))
		for _, m := range summary.OpenTasks {
			fmt.Println("  " + memoryLine(m))
		}
		fmt.Printf("recent (%d):\n", len(summary.Recent))
		for _, m := range summary.Recent {
			fmt.Println("  " + memoryLine(m))
		}
		return
	}
	printJSON(summary)
}
