package model

import (
	"net/url"
	"strconv"
	"strings"
)

// LikeOperator is appended to a query key to request a case-insensitive
// substring match instead of equality.
const LikeOperator = "[like]"

// Field returns the string form of a customer field addressed by its JSON
// name. ok is false for unknown fields.
func (c Customer) Field(name string) (value string, ok bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "email":
		return c.Email, true
	case "phone":
		return c.Phone, true
	case "gender":
		return c.Gender, true
	case "createdAt":
		return c.CreatedAt, true
	case "updatedAt":
		return c.UpdatedAt, true
	}
	return "", false
}

// Field returns the string form of a product field addressed by its JSON
// name. ok is false for unknown fields.
func (p Product) Field(name string) (value string, ok bool) {
	switch name {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "description":
		return p.Description, true
	case "price":
		return strconv.FormatFloat(p.Price, 'f', -1, 64), true
	case "category":
		return p.Category, true
	case "stock":
		return strconv.Itoa(p.Stock), true
	case "totalSold":
		return strconv.Itoa(p.TotalSold), true
	case "createdAt":
		return p.CreatedAt, true
	case "updatedAt":
		return p.UpdatedAt, true
	}
	return "", false
}

// fielder is implemented by records that expose their fields by name.
type fielder interface {
	Field(name string) (string, bool)
}

// MatchCustomer reports whether c satisfies every filter in q.
func MatchCustomer(c Customer, q url.Values) bool {
	return match(c, q, nil)
}

// MatchProduct reports whether p satisfies every filter in q. The extra key
// "search" matches name or description by substring.
func MatchProduct(p Product, q url.Values) bool {
	return match(p, q, func(key, want string) (bool, bool) {
		if key != "search" {
			return false, false
		}
		return containsFold(p.Name, want) || containsFold(p.Description, want), true
	})
}

// match applies the shared filter rules. Unknown keys are ignored. special,
// when non-nil, may claim a key before the generic rules run.
func match(r fielder, q url.Values, special func(key, want string) (matched, handled bool)) bool {
	for key, values := range q {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		want := values[0]
		if special != nil {
			if ok, handled := special(key, want); handled {
				if !ok {
					return false
				}
				continue
			}
		}
		if field, isLike := strings.CutSuffix(key, LikeOperator); isLike {
			got, known := r.Field(field)
			if known && !containsFold(got, want) {
				return false
			}
			continue
		}
		got, known := r.Field(key)
		if known && got != want {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
