package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestGenreListScanJSONArray(t *testing.T) {
	var g GenreList
	if err := g.Scan([]byte(`["Action","Drama"]`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual([]string(g), []string{"Action", "Drama"}) {
		t.Fatalf("unexpected genres: %v", g)
	}
}

func TestGenreListScanDoubleEncodedString(t *testing.T) {
	// A JSON array serialized into a JSON string, as some catalog imports do.
	var g GenreList
	if err := g.Scan([]byte(`"[\"Action\",\"Drama\"]"`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual([]string(g), []string{"Action", "Drama"}) {
		t.Fatalf("unexpected genres: %v", g)
	}
}

func TestGenreListScanBareString(t *testing.T) {
	var g GenreList
	if err := g.Scan([]byte(`"Horror"`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual([]string(g), []string{"Horror"}) {
		t.Fatalf("unexpected genres: %v", g)
	}
}

func TestGenreListScanMalformed(t *testing.T) {
	var g GenreList
	if err := g.Scan([]byte(`not json at all`)); err != nil {
		t.Fatalf("scan must never fail, got: %v", err)
	}
	if !reflect.DeepEqual([]string(g), []string{"not json at all"}) {
		t.Fatalf("unexpected genres: %v", g)
	}
}

func TestGenreListScanNil(t *testing.T) {
	var g GenreList
	if err := g.Scan(nil); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(g) != 0 {
		t.Fatalf("expected empty list, got %v", g)
	}
}

func TestGenreListValueRoundTrip(t *testing.T) {
	g := GenreList{"Action", "Drama"}
	val, err := g.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	var back GenreList
	if err := back.Scan(val.([]byte)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual(back, g) {
		t.Fatalf("round trip mismatch: %v vs %v", back, g)
	}
}

func TestGenreListUnmarshalInsideMovie(t *testing.T) {
	var m Movie
	if err := json.Unmarshal([]byte(`{"id":"tt0111161","title":"The Shawshank Redemption","genres":"[\"Drama\"]"}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual([]string(m.Genres), []string{"Drama"}) {
		t.Fatalf("unexpected genres: %v", m.Genres)
	}
}
