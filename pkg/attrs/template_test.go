package attrs

import "testing"

// mapProvider resolves attributes from a Map, ignoring passToParents.
type mapProvider struct {
	m Map
}

func (p *mapProvider) AttributeValue(ns, key string, passToParents bool) (string, bool) {
	return p.m.Value(ns, key)
}

func TestSubstitute(t *testing.T) {
	p := &mapProvider{}
	p.m.Set("", "NAME", "U1")
	p.m.Set("CMP", "VALUE", "10k")

	cases := []struct {
		template string
		want     string
	}{
		{"{{NAME}}", "U1"},
		{"{{CMP::VALUE}}", "10k"},
		{"{{NAME}} = {{CMP::VALUE}}", "U1 = 10k"},
		{"plain text, no placeholders", "plain text, no placeholders"},
		{"{{MISSING}} done", " done"},
		{"R1: 42 ohms", "R1: 42 ohms"},
	}

	for _, c := range cases {
		got, err := Expand(c.template, p)
		if err != nil {
			t.Errorf("Expand(%q) failed: %v", c.template, err)
			continue
		}
		if got != c.want {
			t.Errorf("Expand(%q): expected %q, got %q", c.template, c.want, got)
		}
	}
}

func TestParseTemplateInvalid(t *testing.T) {
	if _, err := ParseTemplate("{{NO_CLOSE"); err == nil {
		t.Error("expected error for unterminated placeholder")
	}
}

func TestPlaceholders(t *testing.T) {
	tpl, err := ParseTemplate("{{NAME}}/{{PAGE::NAME}}")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}

	refs := tpl.Placeholders()
	if len(refs) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(refs))
	}
	if refs[0].Namespace != "" || refs[0].Key != "NAME" {
		t.Errorf("unexpected first placeholder: %+v", refs[0])
	}
	if refs[1].Namespace != "PAGE" || refs[1].Key != "NAME" {
		t.Errorf("unexpected second placeholder: %+v", refs[1])
	}
}

func TestMapEntriesSorted(t *testing.T) {
	var m Map
	m.Set("PRJ", "TITLE", "demo")
	m.Set("", "NAME", "U1")
	m.Set("CMP", "VALUE", "10k")

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Namespace != "" || entries[1].Namespace != "CMP" || entries[2].Namespace != "PRJ" {
		t.Errorf("entries not sorted: %+v", entries)
	}
}
