package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/alexsab-ru/sitekit/pkg/errors"
)

// fakeGit answers git invocations from a table keyed by the joined args.
type fakeGit struct {
	responses map[string]string
	failures  map[string]bool
	calls     []string
}

func (g *fakeGit) Run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	g.calls = append(g.calls, key)
	if g.failures[key] {
		return "", errors.New("exit status 1")
	}
	return g.responses[key], nil
}

func TestCheckoutMain(t *testing.T) {
	t.Run("switches to first existing branch", func(t *testing.T) {
		git := &fakeGit{
			responses: map[string]string{"branch --show-current": "feature"},
			failures:  map[string]bool{"show-ref --verify --quiet refs/heads/dealer": true},
		}
		branch, err := CheckoutMain(context.Background(), git, "/repo", DefaultBranches)
		require.NoError(t, err)
		assert.Equal(t, "brand", branch)
		assert.Contains(t, git.calls, "checkout brand")
	})

	t.Run("already on branch", func(t *testing.T) {
		git := &fakeGit{responses: map[string]string{"branch --show-current": "dealer"}}
		branch, err := CheckoutMain(context.Background(), git, "/repo", DefaultBranches)
		require.NoError(t, err)
		assert.Equal(t, "dealer", branch)
		assert.NotContains(t, git.calls, "checkout dealer")
	})

	t.Run("dirty worktree is skipped", func(t *testing.T) {
		git := &fakeGit{responses: map[string]string{"status --porcelain": " M src/const.js"}}
		_, err := CheckoutMain(context.Background(), git, "/repo", DefaultBranches)
		assert.True(t, pkgerrors.IsSkipped(err))
		assert.Equal(t, []string{"status --porcelain"}, git.calls)
	})

	t.Run("no known branch", func(t *testing.T) {
		git := &fakeGit{failures: map[string]bool{
			"show-ref --verify --quiet refs/heads/only": true,
		}}
		_, err := CheckoutMain(context.Background(), git, "/repo", []string{"only"})
		assert.True(t, pkgerrors.IsSkipped(err))
	})
}
