package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/jotpad"
	"github.com/poiesic/jotpad/assistant"
	"github.com/poiesic/jotpad/core"
	"github.com/urfave/cli/v2"
)

var (
	errNoInput  = errors.New("no input text: pass it as arguments or on stdin")
	errFallback = errors.New("AI operation failed, original text returned")
)

type textOperation func(m *assistant.Manager, ctx context.Context, text string) (string, bool)

func aiFlags() []cli.Flag {
	return append(workspaceFlags(),
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   "AI provider (ollama, openai, claude, gemini); overrides stored settings",
			EnvVars: []string{"JOTPAD_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the selected provider",
			EnvVars: []string{"JOTPAD_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "local-host",
			Usage: "Local model server URL",
		},
		&cli.StringFlag{
			Name:  "local-model",
			Usage: "Local model name",
		},
	)
}

func aiCommand() *cli.Command {
	return &cli.Command{
		Name:  "ai",
		Usage: "Run an AI writing operation on text",
		Subcommands: []*cli.Command{
			textCommand("summarize", "Condense text, keeping key points", (*assistant.Manager).SummarizeWithFallback),
			textCommand("rewrite", "Improve grammar, clarity and structure", (*assistant.Manager).RewriteAndFormatWithFallback),
			textCommand("blog", "Restructure text as a blog post", (*assistant.Manager).FormatAsBlogPostWithFallback),
			textCommand("speech", "Turn a spoken transcript into a task", (*assistant.Manager).SpeechToTaskWithFallback),
			{
				Name:      "extract",
				Usage:     "Extract actionable tasks from text",
				ArgsUsage: "[text]",
				Action:    extractAction,
				Flags: append(aiFlags(), &cli.BoolFlag{
					Name:  "save",
					Usage: "Add the extracted tasks to the task list",
				}),
			},
		},
	}
}

func textCommand(name, usage string, op textOperation) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[text]",
		Flags:     aiFlags(),
		Action: func(c *cli.Context) error {
			return runText(c, op)
		},
	}
}

func readInput(c *cli.Context) (string, error) {
	var text string
	if c.Args().Len() > 0 {
		text = strings.Join(c.Args().Slice(), " ")
	} else {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}

// openAIWorkspace opens the workspace with an observer that keeps the last failure.
func openAIWorkspace(c *cli.Context, failure *assistant.Failure) (*jotpad.Workspace, error) {
	observer := assistant.FailureObserverFunc(func(f assistant.Failure) {
		*failure = f
	})
	w, _, err := openWorkspace(c, jotpad.WithManagerOptions(assistant.WithObserver(observer)))
	if err != nil {
		return nil, err
	}
	if c.IsSet("provider") {
		w.Manager().UpdateUserSettings(settingsFromFlags(c))
	}
	return w, nil
}

func settingsFromFlags(c *cli.Context) *core.UserAISettings {
	settings := &core.UserAISettings{PreferredAI: core.ParseProviderID(c.String("provider"))}
	key := c.String("api-key")
	switch settings.PreferredAI {
	case core.ProviderOpenAI:
		settings.OpenAIKey = key
	case core.ProviderClaude:
		settings.ClaudeKey = key
	case core.ProviderGemini:
		settings.GeminiKey = key
	}
	return settings
}

func runText(c *cli.Context, op textOperation) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	var failure assistant.Failure
	w, err := openAIWorkspace(c, &failure)
	if err != nil {
		return err
	}
	defer w.Close()

	out, ok := op(w.Manager(), c.Context, text)
	fmt.Fprintln(c.App.Writer, out)
	if !ok {
		return fmt.Errorf("%w: %s", errFallback, failure.Error)
	}
	return nil
}

func extractAction(c *cli.Context) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	var failure assistant.Failure
	w, err := openAIWorkspace(c, &failure)
	if err != nil {
		return err
	}
	defer w.Close()

	tasks, ok := w.Manager().ExtractTasksWithFallback(c.Context, text)
	if !ok {
		return fmt.Errorf("%w: %s", errFallback, failure.Error)
	}
	for _, task := range tasks {
		fmt.Fprintf(c.App.Writer, "- %s\n", task)
	}

	if c.Bool("save") && len(tasks) > 0 {
		added, err := w.AddTasks(c.Context, tasks...)
		if err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "Saved %d tasks\n", len(added))
	}
	return nil
}
