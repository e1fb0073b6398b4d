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

// NewReleasesCommand creates the releases command group.
func NewReleasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "releases",
		Aliases: []string{"release"},
		Short:   "Manage releases",
		Long:    "List, inspect, create and delete the releases of a project",
	}

	addProjectFlag(cmd)

	cmd.AddCommand(newReleasesListCommand())
	cmd.AddCommand(newReleasesGetCommand())
	cmd.AddCommand(newReleasesCreateCommand())
	cmd.AddCommand(newReleasesDeleteCommand())

	return cmd
}

// releasesClient resolves the project and returns its release client.
func releasesClient(ctx context.Context, cmd *cobra.Command) (qtest.ReleasesClient, error) {
	projectID, err := resolveProject(cmd)
	if err != nil {
		return nil, err
	}

	client, err := createClient(ctx)
	if err != nil {
		return nil, err
	}

	return client.Releases(projectID), nil
}

func newReleasesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List releases",
		Long:  "List all releases of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			releases, err := releasesClient(ctx, cmd)
			if err != nil {
				return err
			}

			list, err := releases.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list releases: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return renderReleasesTable(w, list)
			})
		},
	}
}

func newReleasesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RELEASE_ID",
		Short: "Get release details",
		Long:  "Display detailed information about a specific release",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			releaseID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			releases, err := releasesClient(ctx, cmd)
			if err != nil {
				return err
			}

			release, err := releases.Get(ctx, releaseID)
			if err != nil {
				return fmt.Errorf("failed to get release: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), release, func(w io.Writer) error {
				return renderReleaseDetails(w, release)
			})
		},
	}
}

func newReleasesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a release",
		Long:  "Create a release in a project",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			releases, err := releasesClient(ctx, cmd)
			if err != nil {
				return err
			}

			release, err := releases.Create(ctx, &qtest.ReleaseCreateRequest{Name: args[0]})
			if err != nil {
				return fmt.Errorf("failed to create release: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), release, func(w io.Writer) error {
				return renderReleaseDetails(w, release)
			})
		},
	}
}

func newReleasesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RELEASE_ID",
		Short: "Delete a release",
		Long:  "Delete a release from a project",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			releaseID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			releases, err := releasesClient(ctx, cmd)
			if err != nil {
				return err
			}

			deleted, err := releases.Delete(ctx, releaseID)
			if err != nil {
				return fmt.Errorf("failed to delete release: %w", err)
			}

			return reportDeleted(cmd.OutOrStdout(), deleted, "release", releaseID)
		},
	}
}

func renderReleasesTable(w io.Writer, releases []qtest.Release) error {
	if len(releases) == 0 {
		_, _ = fmt.Fprintln(w, "No releases found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "PID", "Name", "Start Date", "End Date")

	for _, release := range releases {
		_ = table.Append([]string{
			strconv.FormatInt(release.ID, 10),
			orNotAvailable(release.PID),
			release.Name,
			formatTime(release.StartDate),
			formatTime(release.EndDate),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderReleaseDetails(w io.Writer, release *qtest.Release) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", strconv.FormatInt(release.ID, 10)})
	_ = table.Append([]string{"PID", orNotAvailable(release.PID)})
	_ = table.Append([]string{"Name", release.Name})
	_ = table.Append([]string{"Description", orNotAvailable(release.Description)})
	_ = table.Append([]string{"Start Date", formatTime(release.StartDate)})
	_ = table.Append([]string{"End Date", formatTime(release.EndDate)})
	_ = table.Append([]string{"Web URL", orNotAvailable(release.WebURL)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
