package transport

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductFilter(t *testing.T) {
	v := url.Values{
		"gender":   {"men", " "},
		"brand":    {"Nike", "Adidas"},
		"category": {"running, Trail", "casual"},
		"q":        {"  air max "},
		"sort":     {"price-high"},
	}
	f := ParseProductFilter(v)

	assert.Equal(t, []string{"men"}, f.Genders)
	assert.Equal(t, []string{"Nike", "Adidas"}, f.Brands)
	assert.Equal(t, []string{"running", "Trail", "casual"}, f.Categories)
	assert.Equal(t, "air max", f.Query)
	assert.Equal(t, SortPriceHigh, f.Sort)

	assert.Equal(t, SortDefault, ParseProductFilter(url.Values{"sort": {"bogus"}}).Sort)
	assert.Empty(t, ParseProductFilter(url.Values{}).Categories)
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	var in struct {
		A StringList `json:"a"`
		B StringList `json:"b"`
		C StringList `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"7, 8,,9","b":["red","blue, green"],"c":null}`), &in))
	assert.Equal(t, StringList{"7", "8", "9"}, in.A)
	assert.Equal(t, StringList{"red", "blue", "green"}, in.B)
	assert.Nil(t, in.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":5}`), &in))
}
