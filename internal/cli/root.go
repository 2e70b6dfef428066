// Package cli implements the recall CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/config"
	"github.com/recall-cli/recall/internal/model"
	"github.com/recall-cli/recall/internal/store"
)

var (
	dbPath      string
	configPath  string
	formatFlag  string
	verboseFlag bool

	logger = log.New(os.Stderr)
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Local notes and tasks with keyword and semantic search",
	Long:  "A local, persistent note/task store. SQLite-backed, single binary. Search by keyword or by meaning.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(log.WarnLevel)
		if verboseFlag {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $RECALL_DB or ~/.recall/recall.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.recall/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging")
}

// openStore loads config and opens the SQLite store with the configured
// embedding provider.
func openStore() (*store.SQLiteStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	opts := []store.Option{store.WithLogger(logger)}
	if e := cfg.Embedder(); e != nil {
		opts = append(opts, store.WithEmbedder(e))
	}
	return store.Open(path, opts...)
}

// storePath reports the database path the store was opened with.
func storePath() string {
	if dbPath != "" {
		return dbPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return dbPath
	}
	return cfg.DBPath
}

// fail reports an error and exits. Unknown ids and non-task status ops are
// informational (exit 0); everything else is a failure (exit 1).
func fail(op string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", op, err)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrNotTask) {
		os.Exit(0)
	}
	os.Exit(1)
}

// parseID parses a memory id argument.
func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fail("parse id", fmt.Errorf("%w: %q is not an integer id", store.ErrValidation, arg))
	}
	return id
}

// splitTags parses a comma-separated tag flag value.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// addListFlags registers the shared filter/pagination flags.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tags", "t", "", "Filter by tags, comma-separated (any-of)")
	cmd.Flags().String("from", "", "Inclusive lower timestamp bound (RFC3339)")
	cmd.Flags().String("to", "", "Inclusive upper timestamp bound (RFC3339)")
	cmd.Flags().BoolP("all", "a", false, "Include archived memories")
	cmd.Flags().IntP("limit", "l", 0, "First N matches (default 20)")
	cmd.Flags().Int("tail", 0, "Last N matches (mutually exclusive with --limit)")
	cmd.Flags().Int("offset", 0, "Shift the window")
}

// listOptions reads the shared filter/pagination flags.
func listOptions(cmd *cobra.Command) (store.Filter, store.Page) {
	tagsStr, _ := cmd.Flags().GetString("tags")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")
	tail, _ := cmd.Flags().GetInt("tail")
	offset, _ := cmd.Flags().GetInt("offset")

	f := store.Filter{
		Tags:            splitTags(tagsStr),
		From:            from,
		To:              to,
		IncludeArchived: all,
	}
	return f, store.Page{Limit: limit, Tail: tail, Offset: offset}
}

// printJSON emits v as indented JSON.
func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// printMemory renders one memory in the selected format.
func printMemory(m *model.Memory) {
	if formatFlag == "text" {
		fmt.Println(memoryLine(*m))
		return
	}
	printJSON(m)
}

// printList renders a page plus its counts.
func printList(res *store.ListResult) {
	if formatFlag == "text" {
		for _, m := range res.Memories {
			fmt.Println(memoryLine(m))
		}
		fmt.Printf("total %d, remaining %d\n", res.Total, res.Remaining)
		return
	}
	printJSON(res)
}

func memoryLine(m model.Memory) string {
	line := fmt.Sprintf("%d  %s  %s", m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Content)
	if len(m.Tags) > 0 {
		line += "  [" + strings.Join(m.Tags, ", ") + "]"
	}
	return line
}
