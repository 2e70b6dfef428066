package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a memory by id",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	mem, err := s.Get(cmd.Context(), id)
	if err != nil {
		fail("get", err)
	}

	printMemory(mem)
}
