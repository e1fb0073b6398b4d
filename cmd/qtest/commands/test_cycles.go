package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTestCyclesCommand creates the test-cycles command group.
func NewTestCyclesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "test-cycles",
		Aliases: []string{"test-cycle", "cycles"},
		Short:   "Manage test cycles",
		Long:    "List, inspect, create and delete the test cycles of a project",
	}

	addProjectFlag(cmd)

	cmd.AddCommand(newTestCyclesListCommand())
	cmd.AddCommand(newTestCyclesGetCommand())
	cmd.AddCommand(newTestCyclesCreateCommand())
	cmd.AddCommand(newTestCyclesDeleteCommand())

	return cmd
}

func testCyclesClient(ctx context.Context, cmd *cobra.Command) (qtest.TestCyclesClient, error) {
	projectID, err := resolveProject(cmd)
	if err != nil {
		return nil, err
	}

	client, err := createClient(ctx)
	if err != nil {
		return nil, err
	}

	return client.TestCycles(projectID), nil
}

func newTestCyclesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List test cycles",
		Long:  "List all test cycles of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cycles, err := testCyclesClient(ctx, cmd)
			if err != nil {
				return err
			}

			list, err := cycles.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list test cycles: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return renderTestCyclesTable(w, list)
			})
		},
	}
}

func newTestCyclesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TEST_CYCLE_ID",
		Short: "Get test cycle details",
		Long:  "Display detailed information about a specific test cycle",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			cycleID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			cycles, err := testCyclesClient(ctx, cmd)
			if err != nil {
				return err
			}

			cycle, err := cycles.Get(ctx, cycleID)
			if err != nil {
				return fmt.Errorf("failed to get test cycle: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), cycle, func(w io.Writer) error {
				return renderTestCycleDetails(w, cycle)
			})
		},
	}
}

func newTestCyclesCreateCommand() *cobra.Command {
	var (
		parentType string
		parentID   int64
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a test cycle",
		Long:  "Create a test cycle at the project root, under a release or under another test cycle",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := parseParentType(parentType)
			if err != nil {
				return err
			}

			ctx := context.Background()

			cycles, err := testCyclesClient(ctx, cmd)
			if err != nil {
				return err
			}

			cycle, err := cycles.Create(ctx, &qtest.TestCycleCreateRequest{
				Name:       args[0],
				ParentType: parent,
				ParentID:   parentID,
			})
			if err != nil {
				return fmt.Errorf("failed to create test cycle: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), cycle, func(w io.Writer) error {
				return renderTestCycleDetails(w, cycle)
			})
		},
	}

	cmd.Flags().StringVar(&parentType, "parent-type", "root", "parent container (root, release, test-cycle)")
	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "parent container ID")

	return cmd
}

func newTestCyclesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TEST_CYCLE_ID",
		Short: "Delete a test cycle",
		Long:  "Delete a test cycle from a project",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			cycleID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			cycles, err := testCyclesClient(ctx, cmd)
			if err != nil {
				return err
			}

			deleted, err := cycles.Delete(ctx, cycleID)
			if err != nil {
				return fmt.Errorf("failed to delete test cycle: %w", err)
			}

			return reportDeleted(cmd.OutOrStdout(), deleted, "test cycle", cycleID)
		},
	}
}

func renderTestCyclesTable(w io.Writer, cycles []qtest.TestCycle) error {
	if len(cycles) == 0 {
		_, _ = fmt.Fprintln(w, "No test cycles found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "PID", "Name", "Target Release", "Last Modified")

	for _, cycle := range cycles {
		_ = table.Append([]string{
			strconv.FormatInt(cycle.ID, 10),
			orNotAvailable(cycle.PID),
			cycle.Name,
			formatOptionalID(cycle.TargetReleaseID),
			formatTime(cycle.LastModifiedDate),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderTestCycleDetails(w io.Writer, cycle *qtest.TestCycle) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", strconv.FormatInt(cycle.ID, 10)})
	_ = table.Append([]string{"PID", orNotAvailable(cycle.PID)})
	_ = table.Append([]string{"Name", cycle.Name})
	_ = table.Append([]string{"Description", orNotAvailable(cycle.Description)})
	_ = table.Append([]string{"Target Release", formatOptionalID(cycle.TargetReleaseID)})
	_ = table.Append([]string{"Created", formatTime(cycle.CreatedDate)})
	_ = table.Append([]string{"Web URL", orNotAvailable(cycle.WebURL)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
