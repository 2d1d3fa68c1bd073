package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/yungbote/scrapbook-backend/internal/normalization"
)

// GenreList is the genres column of a movie. Catalog imports are messy: the
// column can hold a JSON array, a JSON array re-encoded into a JSON string, or
// a bare scalar. Scanning normalizes once at the load boundary so every reader
// sees a plain ordered list of strings.
type GenreList []string

func (g *GenreList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*g = GenreList{}
	case []byte:
		*g = genresFromRaw(v)
	case string:
		*g = genresFromRaw([]byte(v))
	default:
		*g = GenreList(normalization.NormalizeGenres(v))
	}
	return nil
}

func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		g = GenreList{}
	}
	raw, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (g *GenreList) UnmarshalJSON(data []byte) error {
	*g = genresFromRaw(data)
	return nil
}

func (GenreList) GormDataType() string {
	return "jsonb"
}

func genresFromRaw(raw []byte) GenreList {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return GenreList(normalization.NormalizeGenres(string(raw)))
	}
	return GenreList(normalization.NormalizeGenres(decoded))
}
