package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	tagCmd := &cobra.Command{
		Use:   "tag <id> <label>",
		Short: "Add a tag to a memory",
		Args:  cobra.ExactArgs(2),
		Run:   runTag,
	}
	untagCmd := &cobra.Command{
		Use:   "untag <id> <label>",
		Short: "Remove a tag from a memory",
		Args:  cobra.ExactArgs(2),
		Run:   runUntag,
	}

	RootCmd.AddCommand(tagCmd, untagCmd)
}

func runTag(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	added, err := s.AddTag(cmd.Context(), id, args[1])
	if err != nil {
		fail("tag", err)
	}

	note := "tagged"
	if !added {
		note = "tag already present"
	}
	fmt.Printf(`{"ok":true,"id":%d,"tag":%q,"note":%q}`+"\n", id, args[1], note)
}

func runUntag(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	removed, err := s.RemoveTag(cmd.Context(), id, args[1])
	if err != nil {
		fail("untag", err)
	}

	note := "untagged"
	if !removed {
		note = "tag not present"
	}
	fmt.Printf(`{"ok":true,"id":%d,"tag":%q,"note":%q}`+"\n", id, args[1], note)
}
