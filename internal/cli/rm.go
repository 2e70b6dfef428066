package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Archive a memory",
		Long:  "Soft-delete a memory by tagging it archived. Nothing is ever physically deleted.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}
	restoreCmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Un-archive a memory",
		Args:  cobra.ExactArgs(1),
		Run:   runRestore,
	}

	RootCmd.AddCommand(rmCmd, restoreCmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	already, err := s.Archive(cmd.Context(), id)
	if err != nil {
		fail("rm", err)
	}

	note := "archived"
	if already {
		note = "already archived"
	}
	fmt.Printf(`{"ok":true,"id":%d,"note":%q}`+"\n", id, note)
}

func runRestore(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	wasArchived, err := s.Restore(cmd.Context(), id)
	if err != nil {
		fail("restore", err)
	}

	note := "restored"
	if !wasArchived {
		note = "not archived"
	}
	fmt.Printf(`{"ok":true,"id":%d,"note":%q}`+"\n", id, note)
}
