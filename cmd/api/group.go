package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"yatube/internal/service"
)

var groupDescription string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <slug> <title>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := a.deps.Groups.CreateGroup(cmd.Context(), service.GroupInput{
			Slug:        args[0],
			Title:       args[1],
			Description: groupDescription,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created group %s (id %d)\n", g.Slug, g.ID)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List groups",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		groups, err := a.deps.Groups.ListGroups(cmd.Context())
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No groups")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Slug", "Title", "Description"})
		table.SetAutoWrapText(false)
		for _, g := range groups {
			table.Append([]string{strconv.FormatUint(g.ID, 10), g.Slug, g.Title, g.Description})
		}
		table.Render()
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a group; its posts stay without a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.deps.Groups.DeleteGroup(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted group %s\n", args[0])
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVarP(&groupDescription, "description", "d", "", "group description")
	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
	RootCmd.AddCommand(groupCmd)
}
