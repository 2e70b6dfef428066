package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/store"
)

func init() {
	taskCmd := &cobra.Command{
		Use:   "task [content]",
		Short: "Create a task",
		Long:  "Store a memory tagged as a task, starting at status todo.",
		Run:   runTask,
	}
	taskCmd.Flags().StringP("tags", "t", "", "Extra comma-separated tags")

	tasksCmd := &cobra.Command{
		Use:   "tasks [status]",
		Short: "List tasks",
		Long:  "List task memories, optionally restricted to one of todo, wip, done.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runTasks,
	}
	addListFlags(tasksCmd)

	markCmd := &cobra.Command{
		Use:   "mark <id> <status>",
		Short: "Set a task's status",
		Long:  "Move a task to todo, wip, or done. The previous status tag is removed.",
		Args:  cobra.ExactArgs(2),
		Run:   runMark,
	}

	RootCmd.AddCommand(taskCmd, tasksCmd, markCmd)
}

func runTask(cmd *cobra.Command, args []string) {
	tagsStr, _ := cmd.Flags().GetString("tags")

	content := readContent(args)
	if strings.TrimSpace(content) == "" {
		fail("task", fmt.Errorf("%w: content is required (positional arg or stdin)", store.ErrValidation))
	}

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	mem, err := s.CreateTask(cmd.Context(), content, splitTags(tagsStr))
	if err != nil {
		fail("task", err)
	}

	printMemory(mem)
}

func runTasks(cmd *cobra.Command, args []string) {
	f, p := listOptions(cmd)

	status := ""
	if len(args) > 0 {
		status = args[0]
	}

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	res, err := s.ListTasks(cmd.Context(), status, f, p)
	if err != nil {
		fail("tasks", err)
	}

	printList(res)
}

func runMark(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		fail("open store", err)
	}
	defer s.Close()

	mem, err := s.Mark(cmd.Context(), id, args[1])
	if err != nil {
		fail("mark", err)
	}

	printMemory(mem)
}
