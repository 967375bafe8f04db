package domain

import (
	"time"

	"github.com/valyala/fastjson"

	appError "geogate/internal/shared/error"
)

// DateLayout is the only accepted date format, YYYY-MM-DD.
const DateLayout = "2006-01-02"

const (
	KeyPlantingDate    = "pdate"
	KeyGrowSeasonStart = "gsstart"
	KeyGrowSeasonEnd   = "gsend"
)

// requiredDateKeys is checked in this order on every feature.
var requiredDateKeys = [...]string{KeyPlantingDate, KeyGrowSeasonStart, KeyGrowSeasonEnd}

// CheckDates requires every feature to carry pdate, gsstart and gsend as
// YYYY-MM-DD strings. The first feature and key to fail decide the error.
func CheckDates(doc *Document) error {
	for _, feature := range doc.Features() {
		props := featureProperties(feature)
		for _, key := range requiredDateKeys {
			if err := checkDate(props, key); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkDate(props *fastjson.Object, key string) error {
	v := lookup(props, key)
	if v == nil {
		return appError.MissingDateField(key)
	}
	if v.Type() != fastjson.TypeString {
		return appError.MalformedDateField(key)
	}
	// time.Parse also rejects impossible days such as 2024-02-30.
	if _, err := time.Parse(DateLayout, string(v.GetStringBytes())); err != nil {
		return appError.MalformedDateField(key)
	}
	return nil
}
