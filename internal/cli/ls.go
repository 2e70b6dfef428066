package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List memories",
		Run:   runLs,
	}

	addListFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runLs(cmd *cobra.Command, args []string) {
	f, p := listOptions(cmd)

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	res, err := s.List(cmd.Context(), f, p)
	if err != nil {
		fail("ls", err)
	}

	printList(res)
}
