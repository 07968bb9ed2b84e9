package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rinq/userstore-go/src/userstore"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAuthenticateCmd(store func() userstore.Store) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "authenticate <username>",
		Short: "Check a user's password, read from stdin unless --password is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ok, err := store().Authenticate(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("authentication of '%s' failed", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), "authenticated")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "the password to check")

	return cmd
}

func newPropertiesCmd(store func() userstore.Store) *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "properties <username> <property>...",
		Short: "Print the values of a user's properties",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := store().UserPropertyValues(cmd.Context(), args[0], args[1:], profile)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(values))
			for n := range values {
				names = append(names, n)
			}
			sort.Strings(names)

			for _, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n, values[n])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "default", "the profile to read properties from")

	return cmd
}

func newUsersCmd(store func() userstore.Store) *cobra.Command {
	var maxItems int

	cmd := &cobra.Command{
		Use:   "users [filter]",
		Short: "List the users that match a filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store().ListUsers(cmd.Context(), filterArg(args, 0), maxItems)
			return printNames(cmd, names, err)
		},
	}

	addMaxItemsFlag(cmd.Flags(), &maxItems)

	return cmd
}

func newRolesCmd(store func() userstore.Store) *cobra.Command {
	var maxItems int

	cmd := &cobra.Command{
		Use:   "roles [filter]",
		Short: "List the roles that match a filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store().ListRoles(cmd.Context(), filterArg(args, 0), maxItems)
			return printNames(cmd, names, err)
		},
	}

	addMaxItemsFlag(cmd.Flags(), &maxItems)

	return cmd
}

func newUserRolesCmd(store func() userstore.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "user-roles <username> [filter]",
		Short: "List the roles of a user",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store().RolesOfUser(cmd.Context(), args[0], filterArg(args, 1))
			return printNames(cmd, names, err)
		},
	}
}

func newInRoleCmd(store func() userstore.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "in-role <username> <role>",
		Short: "Check whether a user has a role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := store().IsUserInRole(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func addMaxItemsFlag(fs *pflag.FlagSet, maxItems *int) {
	fs.IntVarP(maxItems, "max", "n", 100, "maximum number of names to print, 0 for no limit")
}

func filterArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}

	return "*"
}

func printNames(cmd *cobra.Command, names []string, err error) error {
	if err != nil {
		return err
	}

	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}

	return nil
}
