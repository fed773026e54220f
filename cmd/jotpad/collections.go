package main

import (
	"fmt"
	"time"

	"github.com/poiesic/jotpad"
	"github.com/urfave/cli/v2"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Sign in: move local data to the server and show the remote collections",
		Flags:  workspaceFlags(),
		Action: syncAction,
	}
}

func syncAction(c *cli.Context) error {
	target := resolveTarget(c)
	if target.serverURL == "" {
		return fmt.Errorf("server is required")
	}
	if target.userID == "" {
		return fmt.Errorf("user is required")
	}

	w, _, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(c.App.Writer, "tasks: %d\n", len(w.Tasks().Read(c.Context)))
	fmt.Fprintf(c.App.Writer, "notes: %d\n", len(w.Notes().Read(c.Context)))
	fmt.Fprintf(c.App.Writer, "blogs: %d\n", len(w.Blogs().Read(c.Context)))
	return nil
}

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage the task list",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List tasks",
				Flags:  workspaceFlags(),
				Action: withWorkspace(listTasks),
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				ArgsUsage: "<title>...",
				Flags:     workspaceFlags(),
				Action:    withWorkspace(addTasks),
			},
			{
				Name:      "done",
				Usage:     "Mark a task as completed",
				ArgsUsage: "<id>",
				Flags:     workspaceFlags(),
				Action:    withWorkspace(completeTask),
			},
			{
				Name:      "rm",
				Usage:     "Delete a task",
				ArgsUsage: "<id>",
				Flags:     workspaceFlags(),
				Action:    withWorkspace(deleteTask),
			},
		},
	}
}

func listCommand(name, usage string, action func(*cli.Context, *jotpad.Workspace) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  usage,
				Flags:  workspaceFlags(),
				Action: withWorkspace(action),
			},
		},
	}
}

func withWorkspace(fn func(*cli.Context, *jotpad.Workspace) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		w, _, err := openWorkspace(c)
		if err != nil {
			return err
		}
		defer w.Close()
		return fn(c, w)
	}
}

func listTasks(c *cli.Context, w *jotpad.Workspace) error {
	for _, t := range w.Tasks().Read(c.Context) {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(c.App.Writer, "[%s] %s  %s\n", mark, t.Title, t.ID)
	}
	return nil
}

func addTasks(c *cli.Context, w *jotpad.Workspace) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("task title is required")
	}
	added, err := w.AddTasks(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	for _, t := range added {
		fmt.Fprintln(c.App.Writer, t.ID)
	}
	return nil
}

func completeTask(c *cli.Context, w *jotpad.Workspace) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}
	return w.SetTaskCompleted(c.Context, id, true)
}

func deleteTask(c *cli.Context, w *jotpad.Workspace) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}
	return w.DeleteTask(c.Context, id)
}

func listNotes(c *cli.Context, w *jotpad.Workspace) error {
	for _, n := range w.Notes().Read(c.Context) {
		printDocument(c, n.ID, n.Title, n.UpdatedAt)
	}
	return nil
}

func listBlogs(c *cli.Context, w *jotpad.Workspace) error {
	for _, b := range w.Blogs().Read(c.Context) {
		printDocument(c, b.ID, b.Title, b.UpdatedAt)
	}
	return nil
}

func printDocument(c *cli.Context, id, title string, updatedAt int64) {
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(c.App.Writer, "%s  %s  %s\n", time.UnixMilli(updatedAt).Format("2006-01-02 15:04"), title, id)
}
