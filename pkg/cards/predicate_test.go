package cards

import (
	"fmt"
	"regexp"
	"testing"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// assertPlaceholdersMatchArgs checks the structural invariant every
// predicate must satisfy: each $N placeholder refers to an existing
// argument, and every argument is referenced.
func assertPlaceholdersMatchArgs(t *testing.T, pred string, args []interface{}) {
	t.Helper()
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(pred, -1) {
		seen[m[1]] = true
	}
	if len(seen) != len(args) {
		t.Fatalf("predicate %q references %d placeholders but has %d args", pred, len(seen), len(args))
	}
	for i := range args {
		if !seen[fmt.Sprintf("%d", i+1)] {
			t.Errorf("predicate %q never references $%d", pred, i+1)
		}
	}
}

func TestBuildPredicateUnconstrained(t *testing.T) {
	pred, args := BuildPredicate(SearchFilters{}, "")
	if pred != "TRUE" {
		t.Errorf("Expected TRUE, got %q", pred)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestBuildPredicateQueryDefaultsToName(t *testing.T) {
	pred, args := BuildPredicate(SearchFilters{}, "bolt")
	expected := "(name ILIKE $1)"
	if pred != expected {
		t.Errorf("Expected %q, got %q", expected, pred)
	}
	if len(args) != 1 || args[0] != "%bolt%" {
		t.Errorf("Expected wildcard-wrapped arg, got %v", args)
	}
	assertPlaceholdersMatchArgs(t, pred, args)
}

func TestBuildPredicateMultipleFieldsOR(t *testing.T) {
	filters := SearchFilters{Fields: []SearchField{FieldName, FieldType}}
	pred, args := BuildPredicate(filters, "dragon")
	expected := "(name ILIKE $1 OR main_type ILIKE $2)"
	if pred != expected {
		t.Errorf("Expected %q, got %q", expected, pred)
	}
	if len(args) != 2 || args[0] != "%dragon%" || args[1] != "%dragon%" {
		t.Errorf("Expected one arg per field, got %v", args)
	}
	assertPlaceholdersMatchArgs(t, pred, args)
}

func TestBuildPredicateTypeFilterOnly(t *testing.T) {
	ct := TypeCreature
	pred, args := BuildPredicate(SearchFilters{MainType: &ct}, "")
	expected := "main_type = $1"
	if pred != expected {
		t.Errorf("Expected %q, got %q", expected, pred)
	}
	if len(args) != 1 || args[0] != "Creature" {
		t.Errorf("Expected canonical type string arg, got %v", args)
	}
	assertPlaceholdersMatchArgs(t, pred, args)
}

func TestBuildPredicateQueryAndTypeFilter(t *testing.T) {
	ct := TypeInstant
	filters := SearchFilters{MainType: &ct, Fields: []SearchField{FieldName, FieldType}}
	pred, args := BuildPredicate(filters, "bolt")
	expected := "(name ILIKE $1 OR main_type ILIKE $2) AND main_type = $3"
	if pred != expected {
		t.Errorf("Expected %q, got %q", expected, pred)
	}
	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got %v", args)
	}
	if args[2] != "Instant" {
		t.Errorf("Expected Instant as the type arg, got %v", args[2])
	}
	assertPlaceholdersMatchArgs(t, pred, args)
}

// TestBuildPredicateFilterWithoutQuery ensures the query block is
// skipped entirely when the query is empty, even if fields are set.
func TestBuildPredicateFilterWithoutQuery(t *testing.T) {
	ct := TypeLand
	filters := SearchFilters{MainType: &ct, Fields: []SearchField{FieldName, FieldType}}
	pred, args := BuildPredicate(filters, "")
	if pred != "main_type = $1" {
		t.Errorf("Expected type-only predicate, got %q", pred)
	}
	assertPlaceholdersMatchArgs(t, pred, args)
}
