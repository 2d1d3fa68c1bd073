package normalization

import (
	"reflect"
	"testing"
)

func TestNormalizeGenresNativeList(t *testing.T) {
	got := NormalizeGenres([]string{"Action", "Drama"})
	if !reflect.DeepEqual(got, []string{"Action", "Drama"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNormalizeGenresInterfaceList(t *testing.T) {
	got := NormalizeGenres([]interface{}{"Action", "Drama"})
	if !reflect.DeepEqual(got, []string{"Action", "Drama"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNormalizeGenresJSONString(t *testing.T) {
	got := NormalizeGenres(`["Action","Drama"]`)
	if !reflect.DeepEqual(got, []string{"Action", "Drama"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNormalizeGenresJSONStringMatchesNativeList(t *testing.T) {
	fromString := NormalizeGenres(`["Sci-Fi","Thriller"]`)
	fromList := NormalizeGenres([]interface{}{"Sci-Fi", "Thriller"})
	if !reflect.DeepEqual(fromString, fromList) {
		t.Fatalf("encodings diverge: %v vs %v", fromString, fromList)
	}
}

func TestNormalizeGenresMalformedString(t *testing.T) {
	got := NormalizeGenres(`["Action",`)
	if !reflect.DeepEqual(got, []string{`["Action",`}) {
		t.Fatalf("malformed string should be a single genre, got %v", got)
	}
}

func TestNormalizeGenresPlainString(t *testing.T) {
	got := NormalizeGenres("Horror")
	if !reflect.DeepEqual(got, []string{"Horror"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNormalizeGenresScalar(t *testing.T) {
	got := NormalizeGenres(42)
	if !reflect.DeepEqual(got, []string{"42"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestNormalizeGenresNil(t *testing.T) {
	got := NormalizeGenres(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("nil should normalize to an empty list, got %v", got)
	}
}

func TestNormalizeGenresEmptyString(t *testing.T) {
	got := NormalizeGenres("")
	if len(got) != 0 {
		t.Fatalf("empty string should normalize to an empty list, got %v", got)
	}
}

func TestNormalizeGenresMixedTypeList(t *testing.T) {
	got := NormalizeGenres([]interface{}{"Action", 7})
	if !reflect.DeepEqual(got, []string{"Action", "7"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}
