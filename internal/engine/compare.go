package engine

import (
	"github.com/piwi3910/ShelfCut/internal/model"
)

// ComparisonResult holds the nesting outcome for a single candidate stock.
// Err is set when the job cannot be nested on that stock; the other fields
// are then zero.
type ComparisonResult struct {
	Stock       model.StockSize
	Result      model.NestResult
	Utilization model.Utilization
	Err         error
}

// SheetsUsed returns the sheet count, or zero for a failed candidate.
func (c ComparisonResult) SheetsUsed() int {
	return c.Utilization.SheetCount
}

// CompareStocks nests the same pieces on each candidate stock and returns
// the results in candidate order. A candidate that cannot hold the job
// records its error instead of aborting the comparison.
func (n *Nester) CompareStocks(pieces []model.Piece, stocks []model.StockSize) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(stocks))

	for _, stock := range stocks {
		result, err := n.Nest(pieces, stock)
		if err != nil {
			results = append(results, ComparisonResult{Stock: stock, Err: err})
			continue
		}
		results = append(results, ComparisonResult{
			Stock:       stock,
			Result:      result,
			Utilization: Report(result.Sheets),
		})
	}

	return results
}

// BestComparison picks the successful candidate with the fewest sheets,
// then the lowest waste. Ties keep the earlier candidate. The boolean is
// false when every candidate failed.
func BestComparison(results []ComparisonResult) (ComparisonResult, bool) {
	var best ComparisonResult
	found := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found ||
			r.Utilization.SheetCount < best.Utilization.SheetCount ||
			(r.Utilization.SheetCount == best.Utilization.SheetCount &&
				r.Utilization.WastePercent < best.Utilization.WastePercent-epsilon) {
			best = r
			found = true
		}
	}
	return best, found
}
