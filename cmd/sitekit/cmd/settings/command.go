// Package settings provides the settings command and its subcommands.
package settings

import (
	"github.com/spf13/cobra"

	"github.com/alexsab-ru/sitekit/internal/cmd/application"
	"github.com/alexsab-ru/sitekit/internal/cmd/cmdutil"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/settings"
)

// NewCommand creates the settings command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		GroupID: "data",
		Short:   "Regenerate settings.json from site repositories",
		Long: `Settings reads src/const.js and src/js/app.js of every site repository and
rewrites <root>/<site>/data/settings.json. Values already present in the
settings file win over the freshly extracted ones.

Repositories are read either from local clones or from a GitHub organization.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newLocalCommand(app))
	cmd.AddCommand(newGitHubCommand(app))

	return cmd
}

func newLocalCommand(app application.Application) *cobra.Command {
	var branches []string

	cmd := &cobra.Command{
		Use:   "local <parent>",
		Short: "Read site repositories cloned below parent",
		Long: `Local reads every git repository directly below parent. Each repository is
switched to the first existing branch of --branch before its files are read.`,
		Example: `  sitekit settings local ~/projects
  sitekit settings local ~/projects --branch main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := &settings.LocalFolder{
				Parent:   args[0],
				Git:      settings.ExecGit{},
				Branches: branches,
			}
			return run(cmd, app, src)
		},
	}

	cmd.Flags().StringSliceVar(&branches, "branch", settings.DefaultBranches, "branches to try, in order")

	return cmd
}

func newGitHubCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "github [org]",
		Short: "Read site repositories of a GitHub organization",
		Long: `GitHub lists the repositories of the organization and reads their files
through the contents API. Set GITHUB_TOKEN to raise the rate limit and to
read private repositories.`,
		Example: `  sitekit settings github
  GITHUB_TOKEN=... sitekit settings github alexsab-ru`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config()
			org := cfg.GitHubOrg
			if len(args) == 1 {
				org = args[0]
			}
			src := &settings.GitHubOrg{
				Client: app.HTTPClient(
					fetch.WithToken(cfg.GitHubToken),
					fetch.WithHeader("Accept", "application/vnd.github+json"),
				),
				API: cfg.GitHubAPI,
				Org: org,
			}
			return run(cmd, app, src)
		},
	}
}

func run(cmd *cobra.Command, app application.Application, src settings.Source) error {
	report, err := settings.Update(cmdutil.Context(cmd, app), app.Config().Root, src, app.BatchOptions()...)
	if err != nil {
		return err
	}
	return cmdutil.Finish(cmd, app, report)
}
