package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/marketdev-mcp/registry"
)

func newToolsCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the declared tools",
		Long:  "List, describe and search the tools the server exposes, without starting it",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := cfg.registry(cmd)
			if err != nil {
				return err
			}
			return listTools(cmd, reg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "describe [tool-name]",
		Short: "Show a tool's documentation and input schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.registry(cmd)
			if err != nil {
				return err
			}
			return describeTool(cmd, reg, args[0])
		},
	})

	var limit int
	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank tools against a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.registry(cmd)
			if err != nil {
				return err
			}
			return searchTools(cmd, reg, strings.Join(args, " "), limit)
		},
	}
	search.Flags().IntVar(&limit, "limit", 5, "maximum number of results")
	cmd.AddCommand(search)

	return cmd
}

func (cfg *config) registry(cmd *cobra.Command) (*registry.Registry, error) {
	srv, _, err := cfg.server(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return srv.Registry(), nil
}

func listTools(cmd *cobra.Command, reg *registry.Registry) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tTAGS")
	for _, t := range reg.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, reg.ToolID(t.Name), strings.Join(t.Tags, ","))
	}
	return tw.Flush()
}

func describeTool(cmd *cobra.Command, reg *registry.Registry, name string) error {
	def, ok := reg.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", registry.ErrToolNotFound, name)
	}
	doc, err := reg.Describe(name)
	if err != nil {
		return err
	}
	schema, err := json.MarshalIndent(def.Schema.JSONSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n\n", def.Title, reg.ToolID(name))
	fmt.Fprintf(out, "%s\n\n", def.Description)
	if doc.Summary != "" {
		fmt.Fprintf(out, "Summary: %s\n", doc.Summary)
	}
	if doc.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", doc.Notes)
	}
	for _, ex := range def.Examples {
		args, _ := json.Marshal(ex.Args)
		fmt.Fprintf(out, "Example: %s %s\n", ex.Title, args)
	}
	fmt.Fprintf(out, "\nInput schema:\n%s\n", schema)
	return nil
}

func searchTools(cmd *cobra.Command, reg *registry.Registry, query string, limit int) error {
	results, err := reg.Search(query, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No tools match %q\n", query)
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range results {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.ShortDescription)
	}
	return tw.Flush()
}
