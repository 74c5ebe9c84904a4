package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/pkg/logger"
	"github.com/judgmentfleet/site/repository/file"
	"github.com/judgmentfleet/site/usecase/todo"
)

const shortIDLen = 8

type cliOptions struct {
	dir      string
	category string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Manage the local todo list",
		Long:          "todo keeps a small today/upcoming/completed list in a JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", defaultDir(), "data directory (env TODO_DIR)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log persistence details")

	addCmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item to the selected category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			if opts.category != "" {
				category, ok := domain.ParseCategory(opts.category)
				if !ok {
					return fmt.Errorf("unknown category %q", opts.category)
				}
				store.SetActiveCategory(category)
			}
			item, ok := store.Add(cmd.Context(), strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("text is empty")
			}
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&opts.category, "category", "c", "", "category for the new item (today, upcoming)")

	lsCmd := &cobra.Command{
		Use:   "ls [category]",
		Short: "List the items of a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			category := store.ActiveCategory()
			if len(args) == 1 {
				parsed, ok := domain.ParseCategory(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q", args[0])
				}
				category = parsed
			}
			items := store.View(category)
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no items in %s\n", category)
				return nil
			}
			for _, item := range items {
				printItem(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark an item done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			id, err := resolveID(store, args[0])
			if err != nil {
				return err
			}
			item, _ := store.Toggle(cmd.Context(), id)
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}

	mvCmd := &cobra.Command{
		Use:   "mv <id> <category>",
		Short: "Move an item to another category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			category, ok := domain.ParseCategory(args[1])
			if !ok {
				return fmt.Errorf("unknown category %q", args[1])
			}
			id, err := resolveID(store, args[0])
			if err != nil {
				return err
			}
			item, _ := store.Move(cmd.Context(), id, category)
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			id, err := resolveID(store, args[0])
			if err != nil {
				return err
			}
			store.Delete(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", shortID(id))
			return nil
		},
	}

	countsCmd := &cobra.Command{
		Use:   "counts",
		Short: "Show how many items each category holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			counts := store.Counts()
			for _, category := range domain.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", category, counts[category])
			}
			return nil
		},
	}

	root.AddCommand(addCmd, lsCmd, toggleCmd, mvCmd, rmCmd, countsCmd)
	return root
}

func defaultDir() string {
	if dir := os.Getenv("TODO_DIR"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".judgmentfleet")
	}
	return "."
}

func openStore(cmd *cobra.Command, opts *cliOptions) (*todo.Store, error) {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: "console", Output: cmd.ErrOrStderr()})
	if err != nil {
		log = zap.NewNop()
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return todo.New(ctx, file.NewTodoRepository(opts.dir), log), nil
}

// resolveID accepts a full id or an unambiguous prefix of one.
func resolveID(store *todo.Store, prefix string) (string, error) {
	var matches []string
	for _, item := range store.Items() {
		if item.ID == prefix {
			return item.ID, nil
		}
		if strings.HasPrefix(item.ID, prefix) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no item matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d items", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func printItem(w io.Writer, item domain.TodoItem) {
	mark := " "
	if item.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  %s  (%s)\n", mark, shortID(item.ID), item.Text, item.Category)
}
