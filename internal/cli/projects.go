package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// projectsCommand creates the projects command.
func (c *CLI) projectsCommand() *cobra.Command {
	var interactive, noCache bool

	cmd := &cobra.Command{
		Use:   "projects <file|url>",
		Short: "List the projects of a roadmap",
		Long: `List the projects of a roadmap with their RAG status, epics and the
date range their bars and milestones cover.

With --interactive, pick a project to list its epics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			doc, err := c.loadDocument(ctx, args[0], noCache)
			if err != nil {
				return err
			}
			if len(doc.Projects) == 0 {
				printInfo(out, "No projects in %s", args[0])
				return nil
			}
			if !interactive {
				printProjects(out, doc)
				return nil
			}
			return pickProject(ctx, out, doc)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse projects interactively")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadDocument loads and decodes ref through a runner, so URL documents are
// served from the cache like in render.
func (c *CLI) loadDocument(ctx context.Context, ref string, noCache bool) (*roadmap.Document, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	raw, err := runner.Load(ctx, pipeline.Options{Ref: ref})
	if err != nil {
		return nil, err
	}
	return raw.Decode()
}

func printProjects(w io.Writer, doc *roadmap.Document) {
	if doc.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(doc.Title))
	}
	printDetail(w, "%s from %s", plural(doc.Months, "month"), doc.Start)
	fmt.Fprintln(w, projectTable(doc.Projects, -1))
}

func pickProject(ctx context.Context, w io.Writer, doc *roadmap.Document) error {
	p := tea.NewProgram(NewProjectListModel(doc), tea.WithContext(ctx), tea.WithOutput(w))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(ProjectListModel)
	if !ok || m.Selected == nil {
		printDetail(w, "No selection made")
		return nil
	}
	printProject(w, *m.Selected)
	return nil
}

// printProject prints one project with its epics.
func printProject(w io.Writer, p roadmap.Project) {
	fmt.Fprintln(w, StyleTitle.Render(p.Name)+"  "+renderRAG(p.RAG))
	if p.Description != "" {
		printDetail(w, "%s", p.Description)
	}
	printDetail(w, "%s, %s, span %s",
		plural(len(p.Bars), "bar"), plural(len(p.Milestones), "milestone"), formatSpan(rowSpan(p.Row)))
	if !p.HasEpics() {
		return
	}
	fmt.Fprintln(w, epicTable(p))
}
