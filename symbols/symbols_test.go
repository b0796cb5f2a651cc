package symbols

import (
	"strings"
	"testing"
)

func TestCatalogueOrder(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("All() returned %d entries, Count is %d", len(all), Count)
	}
	for i, e := range all {
		if int(e.ID) != i {
			t.Errorf("entry %q has ID %d at position %d", e.Name, e.ID, i)
		}
		if e.Name == "" || e.Group == "" || e.Signature == "" {
			t.Errorf("entry %d is incomplete: %+v", i, e)
		}
	}
}

func TestCatalogueNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range All() {
		if seen[e.Name] {
			t.Errorf("duplicate name %q", e.Name)
		}
		seen[e.Name] = true
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		id    ID
		group string
	}{
		{"mem_alloc", MemAlloc, "memory"},
		{"variant_new_copy", VariantNewCopy, "variant"},
		{"packed_vector4_array_operator_index_const", PackedVector4ArrayOperatorIndexConst, "packed"},
		{"classdb_register_extension_class2", ClassdbRegisterExtensionClass, "classdb"},
		{"editor_remove_plugin", EditorRemovePlugin, "plugin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if e.ID != tt.id {
				t.Errorf("ID = %d, want %d", e.ID, tt.id)
			}
			if e.Group != tt.group {
				t.Errorf("Group = %q, want %q", e.Group, tt.group)
			}
			if tt.id.Name() != tt.name {
				t.Errorf("ID.Name() = %q", tt.id.Name())
			}
		})
	}

	if _, ok := Lookup("variant_frobnicate"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestPackedPairs(t *testing.T) {
	for _, e := range InGroup("packed") {
		if strings.HasSuffix(e.Name, "_const") {
			continue
		}
		if _, ok := Lookup(e.Name + "_const"); !ok {
			t.Errorf("%s has no const variant", e.Name)
		}
	}
	if n := len(InGroup("packed")); n != 20 {
		t.Errorf("packed group has %d entries, want 20", n)
	}
}

func TestGroups(t *testing.T) {
	groups := Groups()
	if groups[0] != "memory" {
		t.Errorf("first group = %q", groups[0])
	}
	if groups[len(groups)-1] != "plugin" {
		t.Errorf("last group = %q", groups[len(groups)-1])
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("variant_new_cpy", 3)
	if len(got) == 0 || got[0] != "variant_new_copy" {
		t.Fatalf("Suggest = %v, want variant_new_copy first", got)
	}

	if got := Suggest("mem_alloc", 2); len(got) == 0 || got[0] != "mem_free" && got[0] != "mem_realloc" {
		t.Errorf("Suggest(mem_alloc) = %v", got)
	}

	if got := Suggest("zzzzzzzzzzzzzzzzzzzzzzzz", 3); len(got) != 0 {
		t.Errorf("unrelated name should have no suggestions, got %v", got)
	}

	if got := Suggest("variant_hash", 0); got != nil {
		t.Errorf("n=0 should return nil, got %v", got)
	}
}

func TestClosest(t *testing.T) {
	header := []string{"classdb_register_extension_class3", "classdb_register_extension_class4", "mem_alloc2"}
	got := Closest("classdb_register_extension_class2", header, 5)
	want := []string{"classdb_register_extension_class3", "classdb_register_extension_class4"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Closest = %v, want %v", got, want)
	}
	if got := Closest("mem_alloc", header, 1); len(got) != 1 || got[0] != "mem_alloc2" {
		t.Errorf("Closest(mem_alloc) = %v", got)
	}
}
