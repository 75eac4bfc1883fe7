package overpass

import (
	"strings"
	"testing"
)

func TestBuildUnionQuery_OnePerPredicate(t *testing.T) {
	q := BuildUnionQuery(21.0285, 105.8542, 1000, []TagPredicate{
		{Key: "amenity", Value: "cafe"},
		{Key: "shop", Value: "supermarket"},
	}, "")

	if !strings.HasPrefix(q, "[out:json][timeout:60];(") {
		t.Fatalf("missing header: %s", q)
	}
	if !strings.HasSuffix(q, ");out center tags;") {
		t.Fatalf("missing center+tags output clause: %s", q)
	}
	if !strings.Contains(q, `nwr(around:1000,21.0285,105.8542)["amenity"="cafe"];`) {
		t.Fatalf("missing cafe clause: %s", q)
	}
	if !strings.Contains(q, `nwr(around:1000,21.0285,105.8542)["shop"="supermarket"];`) {
		t.Fatalf("missing supermarket clause: %s", q)
	}
}

func TestBuildUnionQuery_KeywordFilter(t *testing.T) {
	q := BuildUnionQuery(21, 105, 500, []TagPredicate{{Key: "amenity", Value: "cafe"}}, "Highlands")
	if !strings.Contains(q, `[~"name|brand"~"Highlands",i]`) {
		t.Fatalf("missing case-insensitive name|brand filter: %s", q)
	}
}

func TestBuildUnionQuery_KeywordTrimmedAndOptional(t *testing.T) {
	q := BuildUnionQuery(21, 105, 500, []TagPredicate{{Key: "amenity", Value: "cafe"}}, "   ")
	if strings.Contains(q, "name|brand") {
		t.Fatalf("blank keyword must not produce a regex filter: %s", q)
	}
}

func TestBuildUnionQuery_EscapesKeyword(t *testing.T) {
	q := BuildUnionQuery(21, 105, 500, []TagPredicate{{Key: "amenity", Value: "cafe"}}, `a.b"c]`)
	if strings.Contains(q, `~"a.b"c]",i`) {
		t.Fatalf("keyword embedded unescaped: %s", q)
	}
	if !strings.Contains(q, `a\.b\"c\]`) {
		t.Fatalf("expected escaped metacharacters and quote: %s", q)
	}
}
