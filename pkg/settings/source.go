package settings

import (
	"context"

	"github.com/alexsab-ru/sitekit/pkg/batch"
)

// Site is one site repository discovered by a Source.
type Site struct {
	// Name is the site folder name below the data root, usually the domain.
	Name string

	// Origin identifies the repository in logs.
	Origin string

	// Content returns the text of src/const.js and src/js/app.js. It is only
	// called when the site folder exists.
	Content func(ctx context.Context) (consts, app string, err error)
}

// Source discovers site repositories. Repositories that cannot be used are
// recorded in report and left out of the result.
type Source interface {
	Sites(ctx context.Context, report *batch.Report) ([]Site, error)
}
