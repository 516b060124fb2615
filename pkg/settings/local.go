package settings

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/batch"
	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

// RequiredFiles must exist in every site repository.
var RequiredFiles = []string{"src/const.js", "src/js/app.js", "astro.config.mjs"}

// LocalFolder reads every git repository directly below Parent.
type LocalFolder struct {
	Parent   string
	Git      Git
	Branches []string
}

// Sites implements Source.
func (f *LocalFolder) Sites(ctx context.Context, report *batch.Report) ([]Site, error) {
	entries, err := os.ReadDir(f.Parent)
	if err != nil {
		return nil, errors.WrapIO("read", f.Parent, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	git := f.Git
	if git == nil {
		git = ExecGit{}
	}
	branches := f.Branches
	if len(branches) == 0 {
		branches = DefaultBranches
	}

	logger := logging.FromContext(ctx)
	var sites []Site
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(f.Parent, entry.Name())
		if !fsutil.Exists(filepath.Join(dir, ".git")) {
			report.Skipped(dir, "not a git repository")
			continue
		}

		branch, err := CheckoutMain(ctx, git, dir, branches)
		if err != nil {
			logger.Warn().Err(err).Str("repo", dir).Msg("Cannot select main branch")
			report.Failed(dir, err)
			continue
		}

		site, err := ReadLocalRepo(dir)
		if err != nil {
			report.Failed(dir, err)
			continue
		}
		logger.Debug().Str("repo", dir).Str("branch", branch).Str("site", site.Name).Msg("Repository ready")
		sites = append(sites, site)
	}
	return sites, nil
}

// ReadLocalRepo checks the required files of the repository in dir and
// resolves its site name.
func ReadLocalRepo(dir string) (Site, error) {
	for _, name := range RequiredFiles {
		if !fsutil.Exists(filepath.Join(dir, name)) {
			return Site{}, errors.Skipf("missing %s in %s", name, dir)
		}
	}

	name, err := SiteName(dir)
	if err != nil {
		return Site{}, err
	}

	return Site{
		Name:   name,
		Origin: dir,
		Content: func(context.Context) (string, string, error) {
			consts, err := os.ReadFile(filepath.Join(dir, "src", "const.js"))
			if err != nil {
				return "", "", errors.WrapIO("read", "src/const.js", err)
			}
			app, err := os.ReadFile(filepath.Join(dir, "src", "js", "app.js"))
			if err != nil {
				return "", "", errors.WrapIO("read", "src/js/app.js", err)
			}
			return string(consts), string(app), nil
		},
	}, nil
}

// SiteName returns the DOMAIN from the repository's .env, falling back to
// the site URL of astro.config.mjs without scheme and trailing slash.
func SiteName(dir string) (string, error) {
	if env, err := godotenv.Read(filepath.Join(dir, ".env")); err == nil {
		if domain := strings.Trim(strings.TrimSpace(env["DOMAIN"]), `"'`); domain != "" {
			return domain, nil
		}
	}

	config, err := os.ReadFile(filepath.Join(dir, "astro.config.mjs"))
	if err != nil {
		return "", errors.WrapIO("read", "astro.config.mjs", err)
	}
	if m := astroSitePattern.FindStringSubmatch(string(config)); m != nil {
		name := strings.ReplaceAll(m[1], "https://", "")
		name = strings.ReplaceAll(name, "http://", "")
		name = strings.TrimRight(name, "/")
		if name != "" {
			return name, nil
		}
	}
	return "", errors.Skipf("cannot determine site name of %s", dir)
}
