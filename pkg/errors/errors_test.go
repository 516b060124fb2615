package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "model", ID: "baic/x75"}
		assert.Equal(t, "model baic/x75 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("color", "silver")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("models.json", nil, "expected an array")
		assert.Equal(t, "validation failed for models.json: expected an array", err.Error())
		assert.True(t, pkgerrors.IsInvalidInput(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty mapping"}
		assert.Equal(t, "validation failed: empty mapping", err.Error())
	})
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.WrapParse("json", "src/site/data/banners.json", base)

	var pe *pkgerrors.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "json", pe.Format)
	assert.ErrorIs(t, err, base)
	assert.True(t, pkgerrors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "banners.json")
}

func TestIOError(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))

	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/settings.json", base)
	assert.Equal(t, "IO error during write of /tmp/settings.json: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestAPIError(t *testing.T) {
	err := pkgerrors.NewAPIError("https://example.com", 502, "Bad Gateway")
	assert.Contains(t, err.Error(), "502")
	assert.True(t, pkgerrors.IsUnavailable(err))

	wrapped := pkgerrors.WrapAPI("https://example.com", 0, errors.New("timeout"))
	assert.Equal(t, "request to https://example.com failed: timeout", wrapped.Error())
}

func TestProcessError(t *testing.T) {
	err := pkgerrors.NewProcessError("checkout", "git checkout main", "error: pathspec", errors.New("exit status 1"))
	assert.Contains(t, err.Error(), "Output: error: pathspec")
	assert.True(t, pkgerrors.IsUnavailable(err))
}

func TestSkipf(t *testing.T) {
	err := pkgerrors.Skipf("no folder for %s", "X75")
	assert.True(t, pkgerrors.IsSkipped(err))
	assert.Equal(t, "skipped: no folder for X75", err.Error())
}
