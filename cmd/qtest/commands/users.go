package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Inspect users",
		Long:    "Look up qTest user accounts",
	}

	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific user",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), user, func(w io.Writer) error {
				return renderUsersTable(w, []qtest.User{*user})
			})
		},
	}
}

func renderUsersTable(w io.Writer, users []qtest.User) error {
	if len(users) == 0 {
		_, _ = fmt.Fprintln(w, "No users found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Username", "Name", "Email")

	for _, user := range users {
		_ = table.Append([]string{
			strconv.FormatInt(user.ID, 10),
			user.Username,
			orNotAvailable(strings.TrimSpace(user.FirstName + " " + user.LastName)),
			orNotAvailable(user.Email),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
