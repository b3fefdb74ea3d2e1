package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/source"
)

// storeCommand creates the store command group.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the roadmaps served by 'highweigh serve'",
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storePutCommand())

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the roadmaps in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			names, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo(out, "Store is empty")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

// storePutCommand creates the "store put" subcommand.
func (c *CLI) storePutCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "put <file|url>",
		Short: "Validate a roadmap and add it to the store",
		Long: `Validate a roadmap document and add it to the store, replacing any
roadmap with the same name. The name defaults to the file name without
extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if name == "" {
				name = baseName(args[0])
			}

			doc, err := c.loadDocument(ctx, args[0], true)
			if err != nil {
				return err
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			w, ok := store.(source.Writer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "store does not accept writes")
			}
			if err := w.Put(ctx, name, doc); err != nil {
				return err
			}

			printSuccess(out, "Stored %s", name)
			printNextStep(out, "Render it with", fmt.Sprintf("curl localhost%s/roadmaps/%s.svg", c.Config.Server.Addr, name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name in the store (default: input file name)")

	return cmd
}
