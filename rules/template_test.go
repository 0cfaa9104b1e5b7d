package rules

import (
	"errors"
	"testing"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// assertNoNils fails if any key, at any depth, holds a nil value.
func assertNoNils(t *testing.T, m map[string]any, path string) {
	t.Helper()
	for k, v := range m {
		if v == nil {
			t.Errorf("key %s.%s is nil, want pruned", path, k)
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			assertNoNils(t, nested, path+"."+k)
		}
	}
}

func TestGenerateCreateTemplatePrunesNulls(t *testing.T) {
	// No image handler, no balanceQty, no contracts: all three must be
	// pruned rather than serialized as null.
	rule := GenerateTemplate(record("Rare Pepe", nil))

	template := rule.GenerateCreateTemplate()
	assertNoNils(t, template, "template")

	if _, ok := template["balanceQty"]; ok {
		t.Error("balanceQty survived pruning")
	}
	if _, ok := template["imageHandler"]; ok {
		t.Error("imageHandler survived pruning")
	}

	// false values must survive pruning.
	if v, ok := template["autoLoad"]; !ok || v != false {
		t.Errorf("autoLoad = %v, want false kept", v)
	}
	if v, ok := template["fusion"]; !ok || v != false {
		t.Errorf("fusion = %v, want false kept", v)
	}
}

func TestGenerateCreateTemplateSentinels(t *testing.T) {
	rule := GenerateTemplate(record("Rare Pepe", nil))
	template := rule.GenerateCreateTemplate()

	for _, key := range []string{"fromAddress", "toAddress", "chainId"} {
		v, ok := template[key].(map[string]any)
		if !ok {
			t.Fatalf("%s is not a sentinel object: %v", key, template[key])
		}
		if v["type"] != PlaceholderUser {
			t.Errorf("%s sentinel type = %v, want %q", key, v["type"], PlaceholderUser)
		}
	}
}

func TestGenerateCreateTemplateSelectLoadType(t *testing.T) {
	rule := GenerateTemplate(record("Rare Pepe", func(r *emblem.CollectionRecord) {
		r.LoadTypes = []string{"select"}
	}))

	template := rule.GenerateCreateTemplate()
	asset, ok := template["targetAsset"].(map[string]any)
	if !ok {
		t.Fatal("targetAsset missing")
	}

	name, ok := asset["name"].(map[string]any)
	if !ok || name["type"] != PlaceholderSelection {
		t.Errorf("targetAsset.name = %v, want selection sentinel", asset["name"])
	}
}

func TestTemplateGuard(t *testing.T) {
	tests := []struct {
		name     string
		template map[string]any
		wantErr  bool
	}{
		{
			name:     "filled template",
			template: map[string]any{"fromAddress": "0xabc", "ok": true},
			wantErr:  false,
		},
		{
			name:     "untouched user sentinel",
			template: map[string]any{"fromAddress": Placeholder(PlaceholderUser)},
			wantErr:  true,
		},
		{
			name:     "untouched selection sentinel",
			template: map[string]any{"asset": Placeholder(PlaceholderSelection)},
			wantErr:  true,
		},
		{
			name:     "nested sentinel",
			template: map[string]any{"outer": map[string]any{"inner": Placeholder(PlaceholderUser)}},
			wantErr:  true,
		},
		{
			name:     "empty string",
			template: map[string]any{"name": ""},
			wantErr:  true,
		},
		{
			name:     "nested empty string",
			template: map[string]any{"outer": map[string]any{"name": ""}},
			wantErr:  true,
		},
		{
			name:     "false is valid",
			template: map[string]any{"autoLoad": false},
			wantErr:  false,
		},
		{
			name: "object with type key is not a sentinel",
			template: map[string]any{
				"schema": map[string]any{"type": "user-provided", "extra": true},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TemplateGuard(tt.template)
			if (err != nil) != tt.wantErr {
				t.Errorf("TemplateGuard() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, emblem.ErrInvalidTemplate) {
				t.Errorf("error does not wrap ErrInvalidTemplate: %v", err)
			}
		})
	}
}

func TestPruneNullsKeepsEmptyString(t *testing.T) {
	m := map[string]any{
		"keep":  "",
		"drop":  nil,
		"inner": map[string]any{"drop": nil, "keep": false},
	}
	pruneNulls(m)

	if _, ok := m["keep"]; !ok {
		t.Error("empty string was pruned")
	}
	if _, ok := m["drop"]; ok {
		t.Error("nil value survived")
	}
	inner := m["inner"].(map[string]any)
	if _, ok := inner["drop"]; ok {
		t.Error("nested nil value survived")
	}
	if v, ok := inner["keep"]; !ok || v != false {
		t.Error("nested false was pruned")
	}
}
