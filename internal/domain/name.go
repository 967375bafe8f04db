package domain

import (
	"strings"
	"unicode"

	"github.com/valyala/fastjson"

	appError "geogate/internal/shared/error"
)

// ObjectExtension is appended to the sanitized name to form the object key.
const ObjectExtension = ".geojson"

// ExtractName reads crs/properties/name and returns it sanitized.
func ExtractName(doc *Document) (string, error) {
	v := lookupPath(doc.root, "crs", "properties", "name")
	if v == nil {
		return "", appError.ErrMissingName
	}
	if v.Type() != fastjson.TypeString {
		return "", appError.NewCustomError(
			appError.ErrInvalidName.HTTPCode,
			appError.ErrInvalidName.Code,
			appError.ErrInvalidName.Message,
			"name is "+v.Type().String(),
		)
	}

	name := SanitizeName(string(v.GetStringBytes()))
	if name == "" {
		return "", appError.ErrInvalidName
	}
	return name, nil
}

// asciiPunctuation is the set stripped from names; "/" among it keeps path
// separators out of object keys.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// SanitizeName removes ASCII punctuation and whitespace. Other runes,
// including non-ASCII letters and symbols, are kept.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, name)
}

// ObjectKey is the storage key for a sanitized name.
func ObjectKey(name string) string {
	return name + ObjectExtension
}
