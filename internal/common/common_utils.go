package common

import (
	"fmt"
	"strings"
	"time"

	"aerosense/estimator/internal/constants"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// CacheKey joins the parts under prefix, upper-casing them so "bom" and "BOM" share an entry.
func CacheKey(prefix constants.CachePrefix, parts ...string) string {
	var b strings.Builder
	b.WriteString(string(prefix))
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strings.ToUpper(strings.TrimSpace(p)))
	}
	return b.String()
}
