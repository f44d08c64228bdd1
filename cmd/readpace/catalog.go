package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/methods"
	"github.com/verte-zerg/readpace/internal/text"
	"github.com/verte-zerg/readpace/internal/wordlist"
)

var (
	methodsVerbose bool
	chunkSize      int
	paperOrigin    string
)

func newMethodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods [id]",
		Short: "List reading methods or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMethodsCmd,
	}
	cmd.Flags().BoolVarP(&methodsVerbose, "verbose", "v", false, "describe every method")
	return cmd
}

func runMethodsCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		m, ok := methods.ByID(args[0])
		if !ok {
			return fmt.Errorf("unknown method %q (available: %s)", args[0], strings.Join(methods.IDs(), ", "))
		}
		_, err := fmt.Fprint(out, describeMethod(m))
		return err
	}
	if methodsVerbose {
		for _, m := range methods.All() {
			if _, err := fmt.Fprintln(out, describeMethod(m)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}
	rows := lo.Map(methods.All(), func(m methods.Method, _ int) []string {
		return []string{m.ID, m.Name, string(m.Mode), fmt.Sprintf("%d", m.ChunkSize)}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Mode", "Chunk").
		Rows(rows...)
	if _, err := fmt.Fprintln(out, t.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func describeMethod(m methods.Method) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", m.Name, m.ID)
	fmt.Fprintf(&b, "%s\n\n", m.Description)
	if m.ScientificBasis != "" {
		fmt.Fprintf(&b, "Basis: %s\n", m.ScientificBasis)
	}
	writeList(&b, "Features", m.Features)
	writeList(&b, "Limitations", m.Limitations)
	writeList(&b, "Recommendations", m.Recommendations)
	if len(m.References) > 0 {
		b.WriteString("References:\n")
		for _, r := range m.References {
			fmt.Fprintf(&b, "  - %s\n", referenceLine(r))
		}
	}
	return b.String()
}

func referenceLine(r methods.Reference) string {
	if r.URL == "" {
		return r.Text
	}
	return fmt.Sprintf("%s <%s>", r.Text, r.URL)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List text sources and word lists",
		Args:  cobra.NoArgs,
		RunE:  runSourcesCmd,
	}
}

func runSourcesCmd(cmd *cobra.Command, _ []string) error {
	rows := lo.Map(text.Catalog(), func(s text.Source, _ int) []string {
		return []string{s.ID, s.Name, string(s.Kind), s.Description}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Kind", "Description").
		Rows(rows...)
	lists := lo.Map(wordlist.Catalog(), func(l wordlist.List, _ int) []string {
		return []string{l.ID, l.Name, l.File}
	})
	wt := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Word list", "Name", "File").
		Rows(lists...)
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\nLocal texts: %s\nCustom word lists: %s\n",
		t.String(), wt.String(), config.DefaultTextDir(), config.DefaultWordListDir())
	return err
}

func newPapersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "papers [keyword]",
		Short: "Search the paper catalog by title or author",
		Long:  "Lists papers whose title or an author contains keyword. Read one with `readpace --source <id>`.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPapersCmd,
	}
	cmd.Flags().StringVar(&paperOrigin, "origin", "all", "archive to search (jstage, arxiv, all)")
	return cmd
}

func runPapersCmd(cmd *cobra.Command, args []string) error {
	origin, err := text.ParseOrigin(paperOrigin)
	if err != nil {
		return err
	}
	var keyword string
	if len(args) == 1 {
		keyword = args[0]
	}
	found := text.SearchPapers(keyword, origin)
	if len(found) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No papers found.")
		return err
	}
	rows := lo.Map(found, func(p text.Paper, _ int) []string {
		return []string{p.ID, p.Title, p.Byline(), string(p.Origin), p.License}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Authors", "Origin", "License").
		Rows(rows...)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}

func newChunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk <file|source-id>",
		Short: "Print a text split into chunks",
		Args:  cobra.ExactArgs(1),
		RunE:  runChunkCmd,
	}
	cmd.Flags().IntVar(&chunkSize, "size", text.DefaultChunkSize, "words per chunk")
	return cmd
}

func runChunkCmd(cmd *cobra.Command, args []string) error {
	if chunkSize <= 0 {
		return fmt.Errorf("--size must be > 0")
	}
	src, ok := text.Find(args[0])
	if !ok {
		src, _ = resolveSource("", args[0])
	}
	loader := text.NewLoader(config.DefaultTextDir())
	loader.ChunkSize = chunkSize
	content, err := loader.Load(context.Background(), src)
	if err != nil {
		return fmt.Errorf("failed to load text: %w", err)
	}
	for _, chunk := range content.Chunks {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), chunk); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
