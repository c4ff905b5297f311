package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmironov/standup-cli/internal/config"
	"github.com/dmironov/standup-cli/internal/plane"
)

var (
	projectsVerbose bool
	projectsQuiet   bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List Plane projects in the workspace",
	Long: `Projects lists every project in the configured Plane workspace with its
ticket identifier and project ID. Use it to find the PLANE_PROJECT_ID value
for restricting report generation to a single project.`,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().BoolVar(&projectsVerbose, "verbose", false, "Enable verbose progress output")
	projectsCmd.Flags().BoolVar(&projectsQuiet, "quiet", false, "Suppress all progress output")
}

func runProjects(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.FromEnvAndFlags(false, false, false, projectsVerbose, projectsQuiet)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)

	client := plane.NewClient(cfg.PlaneBaseURL, cfg.PlaneAPIKey, cfg.PlaneWorkspaceSlug)

	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("Plane API error: %w", err)
	}
	logger.Info("Authenticated", "user", me.Name(), "id", me.ID)

	projects, err := client.Projects(ctx)
	if err != nil {
		return fmt.Errorf("Plane API error: %w", err)
	}

	if len(projects) == 0 {
		fmt.Printf("No projects found in workspace %s\n", cfg.PlaneWorkspaceSlug)
		return nil
	}

	fmt.Printf("Projects in workspace %s:\n", cfg.PlaneWorkspaceSlug)
	for _, project := range projects {
		identifier := project.Identifier
		if identifier == "" {
			identifier = "-"
		}
		fmt.Printf("  %-8s %s (%s)\n", identifier, project.Name, project.ID)
	}

	return nil
}
