package poi

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hoangnm/vn-poi-map/internal/overpass"
)

// ErrUnknownCategory is returned for a category slug outside the catalog.
var ErrUnknownCategory = errors.New("unknown category")

// categories maps API category slugs to OSM tag predicates.
var categories = map[string]overpass.TagPredicate{
	"cafe":        {Key: "amenity", Value: "cafe"},
	"restaurant":  {Key: "amenity", Value: "restaurant"},
	"atm":         {Key: "amenity", Value: "atm"},
	"bank":        {Key: "amenity", Value: "bank"},
	"supermarket": {Key: "shop", Value: "supermarket"},
	"convenience": {Key: "shop", Value: "convenience"},
	"pharmacy":    {Key: "amenity", Value: "pharmacy"},
	"hospital":    {Key: "amenity", Value: "hospital"},
	"hotel":       {Key: "tourism", Value: "hotel"},
	"guest_house": {Key: "tourism", Value: "guest_house"},
	"school":      {Key: "amenity", Value: "school"},
	"library":     {Key: "amenity", Value: "library"},
	"park":        {Key: "leisure", Value: "park"},
	"fuel":        {Key: "amenity", Value: "fuel"},
	"post_office": {Key: "amenity", Value: "post_office"},
}

// CategorySlugs returns the supported category slugs in sorted order.
func CategorySlugs() []string {
	slugs := make([]string, 0, len(categories))
	for s := range categories {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}

// Predicates resolves category slugs to tag predicates, rejecting unknown slugs.
func Predicates(slugs []string) ([]overpass.TagPredicate, error) {
	preds := make([]overpass.TagPredicate, 0, len(slugs))
	for _, s := range slugs {
		p, ok := categories[s]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownCategory, s)
		}
		preds = append(preds, p)
	}
	return preds, nil
}
