package app

import (
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeLines reads a persisted line list. Malformed input yields an empty
// cart. Entries without a product id or with a quantity below 1 are dropped,
// fractional quantities are floored and repeated product ids are summed.
func DecodeLines(raw string) []domain.Line {
	var doc []any
	if err := json.UnmarshalFromString(raw, &doc); err != nil {
		return []domain.Line{}
	}

	out := make([]domain.Line, 0, len(doc))
	index := make(map[string]int, len(doc))
	for _, entry := range doc {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, err := cast.ToStringE(fields["productId"])
		if err != nil || id == "" {
			continue
		}
		qty, err := cast.ToFloat64E(fields["qty"])
		if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
			continue
		}
		n := int(math.Floor(qty))
		if n < 1 {
			continue
		}
		if i, seen := index[id]; seen {
			out[i].Qty += n
			continue
		}
		index[id] = len(out)
		out = append(out, domain.Line{ProductID: id, Qty: n})
	}
	return out
}

func EncodeLines(lines []domain.Line) (string, error) {
	if lines == nil {
		lines = []domain.Line{}
	}
	return json.MarshalToString(lines)
}
