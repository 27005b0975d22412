package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yatube/internal/model"
)

var demote bool

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant (or with --demote, revoke) administrator rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		role := model.RoleAdmin
		if demote {
			role = model.RoleUser
		}
		if err := a.deps.Users.SetRole(cmd.Context(), args[0], role); err != nil {
			return err
		}
		fmt.Printf("%s is now role %d\n", args[0], role)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user together with their posts, comments and follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.deps.Users.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	userPromoteCmd.Flags().BoolVar(&demote, "demote", false, "revoke administrator rights instead")
	userCmd.AddCommand(userPromoteCmd, userDeleteCmd)
	RootCmd.AddCommand(userCmd)
}
