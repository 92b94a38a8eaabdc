package output

import (
	"fmt"
)

// TruncateResponse truncates a slice of items to the configured maximum.
// Returns the truncated slice and a warning if truncation occurred.
func TruncateResponse(items []map[string]any, maxItems int) ([]map[string]any, *TruncationWarning) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	// Cap at absolute maximum
	if maxItems > AbsoluteMaxItems {
		maxItems = AbsoluteMaxItems
	}

	total := len(items)
	if total <= maxItems {
		return items, nil
	}

	return items[:maxItems], &TruncationWarning{
		Shown:   maxItems,
		Total:   total,
		Message: fmt.Sprintf("Output truncated. Showing %d of %d items. Narrow the result with valueType/value filters for complete results.", maxItems, total),
		SuggestFilters: []string{
			"Filter on status, e.g. valueType=status value=READY",
			"Filter on name, e.g. valueType=name value=*prod*",
		},
	}
}

// EffectiveLimit calculates the effective limit considering request and config limits.
// It applies absolute bounds to prevent DoS attacks.
func EffectiveLimit(requestLimit, configLimit int) int {
	if requestLimit <= 0 {
		if configLimit <= 0 {
			return DefaultMaxItems
		}
		return min(configLimit, AbsoluteMaxItems)
	}

	effective := requestLimit
	if configLimit > 0 && configLimit < effective {
		effective = configLimit
	}

	return min(effective, AbsoluteMaxItems)
}
