package rules

import (
	"fmt"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// Placeholder sentinel kinds. A creation template ships with these markers
// in every field the caller must fill before submitting.
const (
	PlaceholderUser      = "user-provided"
	PlaceholderSelection = "selection-provided"
)

// Placeholder builds a sentinel value of the given kind.
func Placeholder(kind string) map[string]any {
	return map[string]any{"type": kind}
}

// GenerateCreateTemplate builds a vault-creation payload skeleton. Fields
// the caller must supply carry user-provided sentinels; fields driven by an
// asset picker carry selection-provided sentinels when the collection loads
// through selection. Keys whose value is exactly nil are pruned recursively;
// false and empty-string values survive.
func (r *BoundRule) GenerateCreateTemplate() map[string]any {
	template := map[string]any{
		"fromAddress":  Placeholder(PlaceholderUser),
		"toAddress":    Placeholder(PlaceholderUser),
		"chainId":      Placeholder(PlaceholderUser),
		"experimental": true,
		"targetContract": map[string]any{
			"name":           r.Name,
			"collectionType": r.CollectionType,
			"description":    r.Description,
			"addresses":      contractsOrNil(r.Contracts),
		},
		"targetAsset":     r.targetAssetTemplate(),
		"addressChain":    r.AddressChain,
		"collectionChain": r.CollectionChain,
		"balanceQty":      floatOrNil(r.BalanceQty),
		"imageHandler":    stringOrNil(r.ImageHandler),
		"autoLoad":        r.AutoLoad,
		"fusion":          r.Fusion,
	}

	pruneNulls(template)
	return template
}

// targetAssetTemplate selects the asset skeleton by load type: selection
// collections defer the asset to the picker, everything else starts in the
// loading state.
func (r *BoundRule) targetAssetTemplate() map[string]any {
	if r.hasLoadType("select") {
		return map[string]any{
			"name":  Placeholder(PlaceholderSelection),
			"image": Placeholder(PlaceholderSelection),
		}
	}
	return map[string]any{
		"name":        "Loading...",
		"image":       stringOrNil(r.LoadingImage()),
		"description": stringOrNil(r.Description),
	}
}

// pruneNulls deletes, recursively and in place, every key whose value is
// exactly nil. false and "" are kept.
func pruneNulls(m map[string]any) {
	for k, v := range m {
		if v == nil {
			delete(m, k)
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			pruneNulls(nested)
		}
	}
}

// TemplateGuard validates a filled-in creation template. It reports an error
// for any key still carrying a placeholder sentinel or an empty string,
// recursing into nested objects. false values are valid.
func TemplateGuard(template map[string]any) error {
	for key, v := range template {
		switch val := v.(type) {
		case map[string]any:
			if isPlaceholder(val) {
				return emblem.NewVaultError(emblem.ErrCodeInvalidTemplate,
					fmt.Sprintf("template field %q was never provided", key),
					emblem.ErrInvalidTemplate)
			}
			if err := TemplateGuard(val); err != nil {
				return err
			}
		case string:
			if val == "" {
				return emblem.NewVaultError(emblem.ErrCodeInvalidTemplate,
					fmt.Sprintf("template field %q is empty", key),
					emblem.ErrInvalidTemplate)
			}
		}
	}
	return nil
}

// isPlaceholder recognizes an untouched sentinel: a single-key object whose
// "type" is one of the placeholder kinds.
func isPlaceholder(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	kind, ok := m["type"].(string)
	return ok && (kind == PlaceholderUser || kind == PlaceholderSelection)
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func contractsOrNil(m map[string]string) any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
