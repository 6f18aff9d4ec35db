package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"moodwell/internal/lowlands"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("35")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

const dateFormat = "2006-01-02 15:04"

// openCLI wires the app for a one-shot command. Log lines go to stderr so
// command output stays clean.
func openCLI(cmd *cobra.Command) (*app, error) {
	return newApp(cmd.Context(), configPath, cmd.ErrOrStderr())
}

func newSessionsCommand() *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if clear {
				if err := a.sessions.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Chat history cleared.")
				return nil
			}

			list := a.sessions.List()
			if len(list) == 0 {
				fmt.Fprintln(out, "No chat sessions yet.")
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Chat sessions (%d)", len(list))))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					titleStyle.Render(s.Title),
					string(s.Mood),
					countStyle.Render(fmt.Sprintf("%d msgs", len(s.Messages))),
					dateStyle.Render(s.LastUpdated.Local().Format(dateFormat)),
				)
				fmt.Fprintf(tw, "  %s\t\t\t\n", idStyle.Render(s.ID))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "delete every stored session")
	return cmd
}

func newPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show recurring journal themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			patterns := a.journal.Patterns()
			if len(patterns) == 0 {
				fmt.Fprintf(out, "No recurring themes across %d entries yet.\n", len(a.journal.List()))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render("Recurring themes"))
			for _, p := range patterns {
				fmt.Fprintf(out, "%s %s  %s\n",
					titleStyle.Render(p.Theme),
					countStyle.Render(fmt.Sprintf("x%d", p.Frequency)),
					dateStyle.Render("last seen "+p.LastSeen.Local().Format(dateFormat)),
				)
				fmt.Fprintf(out, "  %s\n", idStyle.Render(p.Context))
			}
			return nil
		},
	}
}

func newLowlandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lowlands",
		Short: "Show the Lowlands checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, func(ctx context.Context, g *lowlands.Game, out io.Writer) error {
				printLowlands(out, g.State())
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, func(ctx context.Context, g *lowlands.Game, out io.Writer) error {
				if _, ok := lowlands.FindTask(args[0]); !ok {
					return fmt.Errorf("unknown task %q", args[0])
				}
				st, task, applied, err := g.Complete(ctx, args[0])
				if err != nil {
					return err
				}
				if applied {
					fmt.Fprintln(out, doneStyle.Render(task.Encouragement))
				} else {
					fmt.Fprintf(out, "%q is already done.\n", task.Title)
				}
				printLowlands(out, st)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Start a fresh morning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, func(ctx context.Context, g *lowlands.Game, out io.Writer) error {
				st, err := g.Reset(ctx)
				if err != nil {
					return err
				}
				printLowlands(out, st)
				return nil
			})
		},
	})
	return cmd
}

func withGame(cmd *cobra.Command, fn func(ctx context.Context, g *lowlands.Game, out io.Writer) error) error {
	a, err := openCLI(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a.game, cmd.OutOrStdout())
}

func printLowlands(out io.Writer, st lowlands.State) {
	fmt.Fprintln(out, headerStyle.Render("The Lowlands"))
	fmt.Fprintf(out, "Fog %s  Brightness %s  Streak %s\n",
		countStyle.Render(fmt.Sprintf("%d%%", st.FogLevel)),
		countStyle.Render(fmt.Sprintf("%d%%", st.Brightness)),
		countStyle.Render(fmt.Sprintf("%d", st.Streak)),
	)
	fmt.Fprintln(out, st.ProgressMessage())
	fmt.Fprintln(out)

	for _, t := range lowlands.Tasks() {
		mark := "[ ]"
		if st.Completed(t.ID) {
			mark = doneStyle.Render("[x]")
		}
		fmt.Fprintf(out, "%s %-16s %s\n", mark, t.ID, dateStyle.Render(t.Title+" - "+t.Description))
	}

	var items []string
	for _, t := range lowlands.Tasks() {
		if st.Items.Has(t.Reward) {
			items = append(items, string(t.Reward))
		}
	}
	if len(items) > 0 {
		fmt.Fprintf(out, "\nCollected: %s\n", strings.Join(items, ", "))
	}
}
