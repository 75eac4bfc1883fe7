// Package overpass builds and executes Overpass QL queries against a pool
// of redundant interpreter mirrors.
package overpass

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TagPredicate selects entities whose tag[Key] equals Value.
type TagPredicate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BuildUnionQuery produces one Overpass QL query selecting, for each
// predicate, all node/way/relation entities within radiusM meters of the
// center whose tag matches. A non-empty keyword additionally requires the
// name or brand tag to contain it, case-insensitively. Ways and relations
// return their centroid and tags only, not full geometry, and the server is
// given a 60-second execution budget.
func BuildUnionQuery(lat, lon float64, radiusM int, predicates []TagPredicate, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	regexPart := ""
	if keyword != "" {
		regexPart = fmt.Sprintf(`[~"name|brand"~"%s",i]`, escapeRegex(keyword))
	}

	var b strings.Builder
	b.WriteString("[out:json][timeout:60];(")
	for _, p := range predicates {
		fmt.Fprintf(&b, `nwr(around:%d,%s,%s)["%s"="%s"]%s;`,
			radiusM, formatCoord(lat), formatCoord(lon), p.Key, p.Value, regexPart)
	}
	b.WriteString(");out center tags;")
	return b.String()
}

// escapeRegex neutralizes regex metacharacters and embedded quotes so a raw
// user keyword cannot alter the query structure. The keyword lands inside a
// double-quoted Overpass regex literal, so both layers need escaping.
func escapeRegex(keyword string) string {
	escaped := regexp.QuoteMeta(keyword)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return escaped
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
