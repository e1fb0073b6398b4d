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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List, inspect and create qTest projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsUsersCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects the user can access",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), projects, func(w io.Writer) error {
				return renderProjectsTable(w, projects)
			})
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Long:  "Display detailed information about a specific project",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(ctx, projectID)
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), project, func(w io.Writer) error {
				return renderProjectDetails(w, project)
			})
		},
	}
}

func newProjectsCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Long:  "Create a project starting today",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			project, err := client.Projects().Create(ctx, &qtest.ProjectCreateRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), project, func(w io.Writer) error {
				return renderProjectDetails(w, project)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")

	return cmd
}

func newProjectsUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users PROJECT_ID",
		Short: "List project users",
		Long:  "List the users assigned to a project",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			users, err := client.Projects().Users(ctx, projectID)
			if err != nil {
				return fmt.Errorf("failed to list project users: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), users, func(w io.Writer) error {
				return renderUsersTable(w, users)
			})
		},
	}
}

func renderProjectsTable(w io.Writer, projects []qtest.Project) error {
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(w, "No projects found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Start Date", "Description")

	for _, project := range projects {
		_ = table.Append([]string{
			strconv.FormatInt(project.ID, 10),
			project.Name,
			formatTime(project.StartDate),
			truncate(project.Description),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderProjectDetails(w io.Writer, project *qtest.Project) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", strconv.FormatInt(project.ID, 10)})
	_ = table.Append([]string{"Name", project.Name})
	_ = table.Append([]string{"Description", orNotAvailable(project.Description)})
	_ = table.Append([]string{"Start Date", formatTime(project.StartDate)})
	_ = table.Append([]string{"End Date", formatTime(project.EndDate)})
	_ = table.Append([]string{"Automation", strconv.FormatBool(project.Automation)})
	_ = table.Append([]string{"UUID", orNotAvailable(project.UUID)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
