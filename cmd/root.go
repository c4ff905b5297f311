package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "standup-cli",
	Short: "Generate daily standup reports from Plane issues and GitHub commits",
	Long: `standup-cli is a CLI tool that generates daily standup reports. It fetches
your assigned Plane issues, buckets them by state (done, review, blocked,
in progress, backlog), scans your organization's GitHub repositories for
commits on the reporting day, and merges commits with issues by the ticket
references in commit messages. The report is printed to the terminal, copied
to the clipboard, and optionally sent as a Slack DM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
