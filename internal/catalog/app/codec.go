package app

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseOverrides decodes an overrides document. Only a JSON syntax error is
// reported; any field that is not an array becomes empty and array entries
// that do not decode into the entity shape (or lack an id) are dropped.
func ParseOverrides(raw string) (domain.Overrides, error) {
	var doc any
	if err := json.UnmarshalFromString(raw, &doc); err != nil {
		return domain.Overrides{}.Normalize(), fmt.Errorf("parse overrides: %w", err)
	}
	fields, _ := doc.(map[string]any)

	out := domain.Overrides{
		Categories:         decodeEach[domain.Category](fields["categories"], func(c domain.Category) bool { return c.ID != "" }),
		Products:           decodeEach[domain.Product](fields["products"], func(p domain.Product) bool { return p.ID != "" }),
		DeletedCategoryIDs: decodeIDs(fields["deletedCategoryIds"]),
		DeletedProductIDs:  decodeIDs(fields["deletedProductIds"]),
	}
	return out.Normalize(), nil
}

// DecodeOverrides is ParseOverrides with malformed input treated as empty.
func DecodeOverrides(raw string) domain.Overrides {
	if strings.TrimSpace(raw) == "" {
		return domain.Overrides{}.Normalize()
	}
	o, err := ParseOverrides(raw)
	if err != nil {
		return domain.Overrides{}.Normalize()
	}
	return o
}

// EncodeOverrides renders the blob as compact JSON for persistence.
func EncodeOverrides(o domain.Overrides) (string, error) {
	return json.MarshalToString(o.Normalize())
}

// ExportOverrides renders the blob as two-space indented JSON.
func ExportOverrides(o domain.Overrides) (string, error) {
	b, err := json.MarshalIndent(o.Normalize(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEach[T any](raw any, keep func(T) bool) []T {
	list, ok := raw.([]any)
	if !ok {
		return []T{}
	}
	out := make([]T, 0, len(list))
	for _, item := range list {
		if _, isObj := item.(map[string]any); !isObj {
			continue
		}
		var v T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &v,
			WeaklyTypedInput: true,
		})
		if err != nil {
			continue
		}
		if err := dec.Decode(item); err != nil {
			continue
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func decodeIDs(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		id, err := cast.ToStringE(item)
		if err != nil || id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}
