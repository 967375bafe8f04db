package domain

import (
	"github.com/valyala/fastjson"

	appError "geogate/internal/shared/error"
)

// CheckNulls rejects any null value in crs/properties or in the properties
// of any feature. crs/properties is checked first.
func CheckNulls(doc *Document) error {
	if hasNull(doc.CRSProperties()) {
		return appError.ErrNullCRSProperties
	}
	for _, feature := range doc.Features() {
		if hasNull(featureProperties(feature)) {
			return appError.ErrNullFeatureProperties
		}
	}
	return nil
}

func hasNull(o *fastjson.Object) bool {
	for _, v := range members(o) {
		if v.Type() == fastjson.TypeNull {
			return true
		}
	}
	return false
}
