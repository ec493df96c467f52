package export

import (
	"testing"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/geometry"
	"github.com/piwi3910/ShelfCut/internal/model"
)

// buildTestResult nests a small three-module job: two tall modules that
// rotate onto the sheet and one without shelves.
func buildTestResult(t *testing.T) model.NestResult {
	t.Helper()
	settings := model.DefaultSettings()
	modules := []model.ShelvingModule{
		model.NewShelvingModule(80, 30, 200, 5),
		model.NewShelvingModule(60, 40, 120, 3),
		model.NewShelvingModule(60, 25, 90, 0),
	}
	pieces, err := geometry.DeriveJob(modules, settings)
	if err != nil {
		t.Fatalf("DeriveJob: %v", err)
	}
	result, err := engine.New(settings).Nest(pieces, model.DefaultStock())
	if err != nil {
		t.Fatalf("Nest: %v", err)
	}
	return result
}
