package settings

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/constants"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// GitHubOrg reads site repositories of a GitHub organization through the
// REST contents API. Files are read from each repository's default branch.
type GitHubOrg struct {
	Client *fetch.Client
	API    string
	Org    string
}

type githubRepo struct {
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch"`
}

type githubContent struct {
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

func (g *GitHubOrg) api() string {
	if g.API == "" {
		return constants.GitHubAPIURL
	}
	return strings.TrimRight(g.API, "/")
}

// Sites implements Source. Listing stops at the first empty page; a failed
// page ends the listing and is recorded in report.
func (g *GitHubOrg) Sites(ctx context.Context, report *batch.Report) ([]Site, error) {
	if g.Org == "" {
		return nil, errors.NewConfigError("github", "organization is required", nil)
	}
	logger := logging.FromContext(ctx)
	listURL := fmt.Sprintf("%s/orgs/%s/repos", g.api(), g.Org)

	var sites []Site
	for page := 1; ; page++ {
		var repos []githubRepo
		err := g.Client.JSON(ctx, listURL, map[string]string{
			"per_page": strconv.Itoa(constants.GitHubPageSize),
			"page":     strconv.Itoa(page),
		}, &repos)
		if err != nil {
			logger.Warn().Err(err).Int("page", page).Msg("GitHub API error")
			report.Failed(listURL, err)
			break
		}
		if len(repos) == 0 {
			break
		}
		for _, repo := range repos {
			sites = append(sites, g.site(repo))
		}
	}
	logger.Info().Int("repos", len(sites)).Str("org", g.Org).Msg("Repositories listed")
	return sites, nil
}

func (g *GitHubOrg) site(repo githubRepo) Site {
	branch := repo.DefaultBranch
	if branch == "" {
		branch = "main"
	}
	return Site{
		Name:   repo.Name,
		Origin: g.Org + "/" + repo.Name,
		Content: func(ctx context.Context) (string, string, error) {
			return g.file(ctx, repo.Name, "src/const.js", branch), g.file(ctx, repo.Name, "src/js/app.js", branch), nil
		},
	}
}

// file returns the decoded file content, or "" when it cannot be read.
func (g *GitHubOrg) file(ctx context.Context, repo, path, branch string) string {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.api(), g.Org, repo, path)

	var content githubContent
	if err := g.Client.JSON(ctx, url, map[string]string{"ref": branch}, &content); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("repo", repo).Str("path", path).Msg("File unavailable")
		return ""
	}
	if content.Encoding != "base64" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("repo", repo).Str("path", path).Msg("Cannot decode file")
		return ""
	}
	return string(decoded)
}
