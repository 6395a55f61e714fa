package airports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	dir, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, 122, dir.Len())
	assert.Equal(t, "JFK", dir.At(0).Code)
	assert.Equal(t, "LGA", dir.At(1).Code)

	a, ok := dir.ByCode("bom")
	require.True(t, ok)
	assert.Equal(t, "Mumbai", a.City)
}

func TestLoad_NormalizesRecords(t *testing.T) {
	dir, err := Load(strings.NewReader(`[{"city":" Goa ","code":"goi","name":"Goa International","country":"India","lat":15.38,"lng":73.83}]`), nil)
	require.NoError(t, err)

	a := dir.At(0)
	assert.Equal(t, "GOI", a.Code)
	assert.Equal(t, "Goa", a.City)
}

func TestLoad_RejectsCorruptDirectory(t *testing.T) {
	tests := map[string]string{
		"empty":          `[]`,
		"not json":       `{`,
		"bad code":       `[{"city":"X","code":"XXXX","lat":1,"lng":1}]`,
		"no city":        `[{"city":"","code":"XXX","lat":1,"lng":1}]`,
		"bad latitude":   `[{"city":"X","code":"XXX","lat":91,"lng":1}]`,
		"duplicate code": `[{"city":"X","code":"XXX","lat":1,"lng":1},{"city":"Y","code":"xxx","lat":2,"lng":2}]`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(body), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsBadLocation(t *testing.T) {
	airports := `[{"city":"X","code":"XXX","lat":1,"lng":1}]`
	_, err := Load(strings.NewReader(airports), strings.NewReader(`[{"name":"","lat":1,"lng":1}]`))
	assert.Error(t, err)
}
