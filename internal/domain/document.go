package domain

import (
	"github.com/valyala/fastjson"

	appError "geogate/internal/shared/error"
)

// Document is a parsed feature collection. It holds on to the payload it was
// parsed from so an accepted document is stored exactly as it was sent.
// Nothing in the validation pipeline modifies it.
type Document struct {
	raw  []byte
	root *fastjson.Value
}

// ParseDocument parses payload into a Document. Anything that is not a
// syntactically valid JSON object is rejected as invalid geojson.
func ParseDocument(payload []byte) (*Document, error) {
	var p fastjson.Parser
	root, err := p.ParseBytes(payload)
	if err != nil {
		return nil, appError.NewCustomError(
			appError.ErrInvalidGeoJSON.HTTPCode,
			appError.ErrInvalidGeoJSON.Code,
			appError.ErrInvalidGeoJSON.Message,
			err.Error(),
		)
	}
	if root.Type() != fastjson.TypeObject {
		return nil, appError.NewCustomError(
			appError.ErrInvalidGeoJSON.HTTPCode,
			appError.ErrInvalidGeoJSON.Code,
			appError.ErrInvalidGeoJSON.Message,
			"top-level value is "+root.Type().String(),
		)
	}
	return &Document{raw: payload, root: root}, nil
}

// Raw returns the payload the document was parsed from.
func (d *Document) Raw() []byte {
	return d.raw
}

// CRSProperties returns the crs/properties object, or nil when absent or not
// an object.
func (d *Document) CRSProperties() *fastjson.Object {
	return asObject(lookupPath(d.root, "crs", "properties"))
}

// Features returns the features in document order. Non-array features yield
// nil.
func (d *Document) Features() []*fastjson.Value {
	v := lookupPath(d.root, "features")
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil
	}
	return v.GetArray()
}

// featureProperties returns a feature's properties object. GeoJSON allows
// properties to be null, which is treated as an empty set.
func featureProperties(feature *fastjson.Value) *fastjson.Object {
	return asObject(lookupPath(feature, "properties"))
}

// lookup returns the value of the last member named key. fastjson's Get
// returns the first one, while encoding/json and the schema check keep the
// last, so every lookup goes through here.
func lookup(o *fastjson.Object, key string) *fastjson.Value {
	if o == nil {
		return nil
	}
	var found *fastjson.Value
	o.Visit(func(k []byte, v *fastjson.Value) {
		if string(k) == key {
			found = v
		}
	})
	return found
}

// lookupPath walks nested objects with lookup. It returns nil as soon as a
// step is missing or not an object.
func lookupPath(v *fastjson.Value, keys ...string) *fastjson.Value {
	for _, key := range keys {
		v = lookup(asObject(v), key)
		if v == nil {
			return nil
		}
	}
	return v
}

func asObject(v *fastjson.Value) *fastjson.Object {
	if v == nil || v.Type() != fastjson.TypeObject {
		return nil
	}
	o, _ := v.Object()
	return o
}

// members returns an object's members with duplicate keys collapsed to their
// last value, in order of first appearance.
func members(o *fastjson.Object) []*fastjson.Value {
	if o == nil {
		return nil
	}
	index := map[string]int{}
	var values []*fastjson.Value
	o.Visit(func(k []byte, v *fastjson.Value) {
		if i, ok := index[string(k)]; ok {
			values[i] = v
			return
		}
		index[string(k)] = len(values)
		values = append(values, v)
	})
	return values
}
