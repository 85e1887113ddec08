package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/repowatch/internal/subscription"
)

func init() {
	rootCmd.AddCommand(subCmd)
	subCmd.AddCommand(subListCmd, subAddCmd, subRemoveCmd)
}

var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage repository subscriptions",
}

func subscriptionStore() *subscription.Store {
	cfg := loadConfig()
	return subscription.NewStore(cfg.GitHub.SubscriptionsFile)
}

var subListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribed repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := subscriptionStore().List()
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Fprintln(os.Stdout, "No subscriptions.")
			return nil
		}
		for _, sub := range subs {
			status := "enabled"
			if !sub.Enabled {
				status = "disabled"
			}
			fmt.Fprintf(os.Stdout, "%s (%s)\n", sub.Repo, status)
		}
		return nil
	},
}

var subAddCmd = &cobra.Command{
	Use:   "add <owner/repo>",
	Short: "Subscribe to a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := subscriptionStore().Add(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Subscribed to %s\n", args[0])
		return nil
	},
}

var subRemoveCmd = &cobra.Command{
	Use:   "remove <owner/repo>",
	Short: "Unsubscribe from a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := subscriptionStore().Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Unsubscribed from %s\n", args[0])
		return nil
	},
}
