package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage the watchlist",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List watched symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			wl, err := a.watchlist()
			if err != nil {
				return err
			}
			symbols := wl.List()
			if len(symbols) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty.")
				return nil
			}
			for _, s := range symbols {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add SYMBOL...",
		Short: "Add symbols to the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			wl, err := a.watchlist()
			if err != nil {
				return err
			}
			for _, s := range args {
				added, err := wl.Add(s)
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", s)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already watched\n", s)
				}
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove SYMBOL...",
		Short: "Remove symbols from the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			wl, err := a.watchlist()
			if err != nil {
				return err
			}
			for _, s := range args {
				removed, err := wl.Remove(s)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", s)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s not watched\n", s)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	return cmd
}
