package navigator

import (
	"errors"
	"reflect"
	"testing"
)

func fixture() map[string]any {
	return map[string]any{
		"pokemon": []any{
			map[string]any{"name": "Bulbasaur", "level": 1},
			map[string]any{"name": "Charmander", "level": 5},
		},
		"trainer": map[string]any{"name": "Ash"},
		"badges":  8,
	}
}

func mustParse(t *testing.T, path string) []Step {
	t.Helper()
	steps, err := Parse(path, ".")
	if err != nil {
		t.Fatalf("Parse(%q): %v", path, err)
	}
	return steps
}

func TestResolveNestedValue(t *testing.T) {
	root := fixture()
	got, err := Resolve(root, mustParse(t, "pokemon[0].level"), "pokemon[0].level")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestResolveEmptySteps(t *testing.T) {
	root := fixture()
	got, err := Resolve(root, nil, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(got, root) {
		t.Fatalf("expected root back, got %v", got)
	}
}

func TestResolveMissingKey(t *testing.T) {
	root := map[string]any{"a": map[string]any{"b": 1}}
	_, err := Resolve(root, mustParse(t, "a.c"), "a.c")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	var rerr *ResolveError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ResolveError, got %T", err)
	}
	if rerr.Segment != "c" || rerr.Path != "a.c" {
		t.Fatalf("expected segment 'c' in path 'a.c', got %q in %q", rerr.Segment, rerr.Path)
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	root := fixture()
	_, err := Resolve(root, mustParse(t, "pokemon[5].level"), "pokemon[5].level")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	var rerr *ResolveError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ResolveError, got %T", err)
	}
	if rerr.Segment != "[5]" {
		t.Fatalf("expected offending index '[5]', got %q", rerr.Segment)
	}
}

func TestResolveIndexIntoScalar(t *testing.T) {
	root := map[string]any{"a": 1}
	_, err := Resolve(root, mustParse(t, "a[0]"), "a[0]")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestResolveKeyIntoSequence(t *testing.T) {
	root := fixture()
	_, err := Resolve(root, mustParse(t, "pokemon.name"), "pokemon.name")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestResolveIndexIntoMapping(t *testing.T) {
	root := fixture()
	_, err := Resolve(root, mustParse(t, "trainer[0]"), "trainer[0]")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestResolveFailsFast(t *testing.T) {
	// The first bad step reports; nothing past it is attempted.
	root := fixture()
	_, err := Resolve(root, mustParse(t, "ghost.also.missing"), "ghost.also.missing")
	var rerr *ResolveError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ResolveError, got %T", err)
	}
	if rerr.Segment != "ghost" {
		t.Fatalf("expected first failing segment 'ghost', got %q", rerr.Segment)
	}
}

func TestResolveParentReturnsFinalStep(t *testing.T) {
	root := fixture()
	parent, final, err := ResolveParent(root, mustParse(t, "pokemon[0].level"), "pokemon[0].level")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(final, Key{Name: "level"}) {
		t.Fatalf("expected final step Key(level), got %v", final)
	}
	m, ok := parent.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping parent, got %T", parent)
	}
	if m["name"] != "Bulbasaur" {
		t.Fatalf("expected the first pokemon as parent, got %v", m)
	}
}

func TestResolveParentSingleStep(t *testing.T) {
	root := fixture()
	parent, final, err := ResolveParent(root, mustParse(t, "badges"), "badges")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(final, Key{Name: "badges"}) {
		t.Fatalf("expected Key(badges), got %v", final)
	}
	if !reflect.DeepEqual(parent, root) {
		t.Fatalf("expected root as parent")
	}
}

func TestResolveParentEmptySteps(t *testing.T) {
	_, _, err := ResolveParent(fixture(), nil, "")
	if !errors.Is(err, ErrMalformedPath) {
		t.Fatalf("expected ErrMalformedPath, got %v", err)
	}
}

func TestResolveThenStoreReadAfterWrite(t *testing.T) {
	root := fixture()
	steps := mustParse(t, "pokemon[0].level")
	parent, final, err := ResolveParent(root, steps, "pokemon[0].level")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := Store(parent, final, 666, "pokemon[0].level"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := Resolve(root, steps, "pokemon[0].level")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 666 {
		t.Fatalf("expected 666 after write, got %v", got)
	}
}

func TestResolveParentCreatingBuildsIntermediateMappings(t *testing.T) {
	root := map[string]any{}
	parent, final, err := ResolveParentCreating(root, mustParse(t, "a.b.c"), "a.b.c")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(final, Key{Name: "c"}) {
		t.Fatalf("expected final step Key(c), got %v", final)
	}
	a, ok := root["a"].(map[string]any)
	if !ok {
		t.Fatalf("expected mapping at 'a', got %T", root["a"])
	}
	b, ok := a["b"].(map[string]any)
	if !ok {
		t.Fatalf("expected mapping at 'a.b', got %T", a["b"])
	}
	if !reflect.DeepEqual(parent, b) {
		t.Fatalf("expected parent to be the mapping at 'a.b'")
	}
}

func TestResolveParentCreatingNeverExtendsSequences(t *testing.T) {
	root := map[string]any{"list": []any{"only"}}
	_, _, err := ResolveParentCreating(root, mustParse(t, "list[3].x"), "list[3].x")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestResolveParentCreatingDoesNotClobberScalars(t *testing.T) {
	root := map[string]any{"a": 1}
	_, _, err := ResolveParentCreating(root, mustParse(t, "a.b.c"), "a.b.c")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if root["a"] != 1 {
		t.Fatalf("expected scalar at 'a' untouched, got %v", root["a"])
	}
}

func TestStoreCreatesFinalMapKey(t *testing.T) {
	root := map[string]any{"a": map[string]any{}}
	parent, final, err := ResolveParent(root, mustParse(t, "a.fresh"), "a.fresh")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := Store(parent, final, "v", "a.fresh"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if root["a"].(map[string]any)["fresh"] != "v" {
		t.Fatalf("expected stored value at a.fresh")
	}
}

func TestStoreSequenceIndexMustExist(t *testing.T) {
	seq := []any{"a"}
	err := Store(seq, Index{I: 3}, "x", "list[3]")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemoveMapKey(t *testing.T) {
	root := fixture()
	got, err := Remove(root, mustParse(t, "trainer.name"), "trainer.name")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "Ash" {
		t.Fatalf("expected removed value 'Ash', got %v", got)
	}
	if _, ok := root["trainer"].(map[string]any)["name"]; ok {
		t.Fatalf("expected key removed")
	}
}

func TestRemoveSequenceElementSplices(t *testing.T) {
	root := fixture()
	got, err := Remove(root, mustParse(t, "pokemon[0]"), "pokemon[0]")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	removed, ok := got.(map[string]any)
	if !ok || removed["name"] != "Bulbasaur" {
		t.Fatalf("expected the first pokemon back, got %v", got)
	}
	rest, ok := root["pokemon"].([]any)
	if !ok || len(rest) != 1 {
		t.Fatalf("expected a one-element sequence after splice, got %v", root["pokemon"])
	}
	if rest[0].(map[string]any)["name"] != "Charmander" {
		t.Fatalf("expected Charmander to remain, got %v", rest[0])
	}
}

func TestRemoveMissingKey(t *testing.T) {
	root := fixture()
	_, err := Remove(root, mustParse(t, "trainer.ghost"), "trainer.ghost")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestRemoveIndexOutOfRange(t *testing.T) {
	root := fixture()
	_, err := Remove(root, mustParse(t, "pokemon[9]"), "pokemon[9]")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestFetchUnknownStepKind(t *testing.T) {
	_, err := Fetch(map[string]any{}, nil, "x")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch for nil step, got %v", err)
	}
}
