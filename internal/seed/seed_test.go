package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretehq/arete/internal/types"
)

func TestDefaultResourcesParse(t *testing.T) {
	resources, err := DefaultResources()
	if err != nil {
		t.Fatalf("embedded library failed to parse: %v", err)
	}
	if len(resources) == 0 {
		t.Fatal("embedded library is empty")
	}
	for _, r := range resources {
		if err := r.Validate(); err != nil {
			t.Errorf("embedded resource %q invalid: %v", r.Title, err)
		}
		if r.UnlockedAt != nil {
			t.Errorf("embedded resource %q should start locked", r.Title)
		}
	}
}

func TestLoadResourcesFallsBackToDefault(t *testing.T) {
	got, err := LoadResources(t.TempDir())
	if err != nil {
		t.Fatalf("LoadResources: %v", err)
	}
	want, _ := DefaultResources()
	if len(got) != len(want) {
		t.Errorf("expected embedded default (%d resources), got %d", len(want), len(got))
	}
}

func TestLoadResourcesOverride(t *testing.T) {
	dir := t.TempDir()
	override := `resources:
  - title: Custom Book
    author: Someone
    type: book
    summary: A single custom entry.
    key_principles:
      - Only one
    relevant_pillar_ids: [1, 2]
`
	if err := os.WriteFile(filepath.Join(dir, OverrideFilename), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadResources(dir)
	if err != nil {
		t.Fatalf("LoadResources: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 resource from override, got %d", len(got))
	}
	r := got[0]
	if r.Title != "Custom Book" || r.Type != types.ResourceBook {
		t.Errorf("unexpected resource: %+v", r)
	}
	if len(r.RelevantPillarIDs) != 2 {
		t.Errorf("expected 2 pillar ids, got %v", r.RelevantPillarIDs)
	}
}

func TestLoadResourcesRejectsInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	bad := `resources:
  - title: ""
    type: book
`
	if err := os.WriteFile(filepath.Join(dir, OverrideFilename), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResources(dir); err == nil {
		t.Fatal("expected validation error for empty title")
	}
}
