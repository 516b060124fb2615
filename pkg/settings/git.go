package settings

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Git runs git subcommands inside a repository.
type Git interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecGit runs the git binary found on PATH.
type ExecGit struct{}

// Run executes git with args in dir and returns its trimmed standard output.
func (ExecGit) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		pe := errors.NewProcessError(firstArg(args), "git "+strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			pe.ExitCode = exitErr.ExitCode()
		}
		return "", pe
	}
	return strings.TrimSpace(stdout.String()), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return "git"
	}
	return args[0]
}

// DefaultBranches are tried in order when selecting the branch to read.
var DefaultBranches = []string{"dealer", "brand", "main", "master"}

// CheckoutMain switches the repository in dir to the first existing branch
// of branches and returns its name. Repositories with uncommitted changes are
// never touched.
func CheckoutMain(ctx context.Context, git Git, dir string, branches []string) (string, error) {
	status, err := git.Run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if status != "" {
		return "", errors.Skipf("uncommitted changes in %s", dir)
	}

	for _, branch := range branches {
		if _, err := git.Run(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch); err != nil {
			continue
		}
		current, err := git.Run(ctx, dir, "branch", "--show-current")
		if err != nil {
			return "", err
		}
		if current != branch {
			if _, err := git.Run(ctx, dir, "checkout", branch); err != nil {
				return "", err
			}
		}
		return branch, nil
	}
	return "", errors.Skipf("no main branch in %s", dir)
}
