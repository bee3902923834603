package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/bite-admin/bite/pkg/model"
)

// searchField is the filter key translated into a substring query.
const searchField = "name"

// TranslateFilters converts in-memory filter state into list query
// parameters. nil values, nil pointers and empty strings are dropped. The
// "name" key becomes "name[like]"; every other key is kept as is.
//
// Translating an already translated map is not stable: "name[like]" is passed
// through untouched, so a map holding both "name" and "name[like]" loses one
// of the two values.
func TranslateFilters(filters map[string]any) url.Values {
	params := url.Values{}
	for key, raw := range filters {
		value, ok := filterValue(raw)
		if !ok {
			continue
		}
		if key == searchField {
			key = searchField + model.LikeOperator
		}
		params.Set(key, value)
	}
	return params
}

// filterValue renders a filter value as a query string value. ok is false
// when the value is absent.
func filterValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case *string:
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case *float64:
		if v == nil {
			return "", false
		}
		return strconv.FormatFloat(*v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return "", false
			}
			return filterValue(rv.Elem().Interface())
		}
		return fmt.Sprint(v), true
	}
}
