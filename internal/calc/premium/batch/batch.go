package batch

import (
	"errors"
	"fmt"

	pump "Impeller/internal/calc/pump"
)

const MaxItems = 500

var ErrNoItems = errors.New("no items")

type PumpBatchInput struct {
	Items []map[string]any `json:"items"`
}

// ItemResult carries either a rounded result or the reason the item failed.
type ItemResult struct {
	Index  int          `json:"index"`
	Result *pump.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
	Field  string       `json:"field,omitempty"`
}

type PumpBatchResult struct {
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// CalculatePumps sizes every item independently; one bad item does not stop
// the rest.
func CalculatePumps(in PumpBatchInput) (PumpBatchResult, error) {
	if len(in.Items) == 0 {
		return PumpBatchResult{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return PumpBatchResult{}, fmt.Errorf("too many items: %d (max %d)", len(in.Items), MaxItems)
	}
	out := PumpBatchResult{Results: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		out.Results = append(out.Results, sizeItem(i, item))
	}
	for _, r := range out.Results {
		if r.Error != "" {
			out.Failed++
		}
	}
	out.Count = len(out.Results)
	return out, nil
}

func sizeItem(i int, raw map[string]any) ItemResult {
	item := ItemResult{Index: i}
	if raw == nil {
		item.Error = "item must be a JSON object"
		return item
	}
	res, err := pump.Size(raw)
	if err != nil {
		var verr *pump.ValidationError
		if errors.As(err, &verr) {
			item.Error = verr.Error()
			item.Field = verr.Field
		} else {
			item.Error = "internal calculation error"
		}
		return item
	}
	rounded := res.Rounded()
	item.Result = &rounded
	return item
}
