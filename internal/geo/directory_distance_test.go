package geo_test

import (
	"testing"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/geo"

	"github.com/stretchr/testify/require"
)

func TestDistance_SymmetricAndZeroAcrossDirectory(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	require.Positive(t, dir.Len())
	for i := 0; i < dir.Len(); i++ {
		a := dir.At(i)
		require.Zero(t, geo.Distance(a, a), a.Code)
		for j := 0; j < dir.Len(); j++ {
			b := dir.At(j)
			ab, ba := geo.Distance(a, b), geo.Distance(b, a)
			require.InDelta(t, ab, ba, 1e-9, "%s-%s", a.Code, b.Code)
			if a.Code != b.Code {
				require.Positive(t, ab, "%s-%s", a.Code, b.Code)
			}
		}
	}
}
