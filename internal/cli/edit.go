package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id> [content]",
		Short: "Replace a memory's content as a new version",
		Long:  "Archive the memory and store its replacement as a new memory carrying the same tags. The original stays retrievable.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEdit,
	}

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	content := readContent(args[1:])
	if strings.TrimSpace(content) == "" {
		fail("edit", fmt.Errorf("%w: new content is required (positional arg or stdin)", store.ErrValidation))
	}

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	mem, err := s.Edit(cmd.Context(), id, content)
	if err != nil {
		fail("edit", err)
	}

	printMemory(mem)
}
