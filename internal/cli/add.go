package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Store a memory",
		Long:  "Store a memory. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")

	RootCmd.AddCommand(cmd)
}

// readContent takes content from positional args or stdin.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail("read stdin", err)
		}
		return strings.TrimSpace(string(b))
	}
	return ""
}

func runAdd(cmd *cobra.Command, args []string) {
	tagsStr, _ := cmd.Flags().GetString("tags")

	content := readContent(args)
	if strings.TrimSpace(content) == "" {
		fail("add", fmt.Errorf("%w: content is required (positional arg or stdin)", store.ErrValidation))
	}

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	mem, err := s.Add(cmd.Context(), content, splitTags(tagsStr))
	if err != nil {
		fail("add", err)
	}

	printMemory(mem)
}
