// Package schema checks submitted documents against the shapes the frontend
// expects. The checks are deliberately shallow: presence and primitive type,
// one or two levels deep. The first failing field wins and its message is
// returned verbatim; an empty string means the document is valid.
package schema

import (
	"fmt"
	"strings"

	"vitrina/internal/content/model"
)

type kind int

const (
	kindString kind = iota
	kindNonEmptyString
	kindBool
	kindArray
	kindObject
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "a string"
	case kindNonEmptyString:
		return "a non-empty string"
	case kindBool:
		return "a boolean"
	case kindArray:
		return "an array"
	default:
		return "an object"
	}
}

// rule is one required field: a dotted path into the document and the shape
// expected at that path. Adding a field to the business shape is a new rule
// here, not new control flow.
type rule struct {
	path string
	kind kind
}

var siteRules = []rule{
	{"businessName", kindNonEmptyString},
	{"tagline", kindString},
	{"hero", kindObject},
	{"hero.title", kindString},
	{"hero.subtitle", kindString},
	{"about", kindString},
	{"contact", kindObject},
	{"contact.phone", kindString},
	{"contact.whatsapp", kindString},
	{"contact.email", kindString},
	{"contact.instagram", kindString},
	{"location", kindObject},
	{"location.address", kindString},
	{"location.city", kindString},
	{"location.mapsUrl", kindString},
	{"hours", kindObject},
	{"hours.0", kindArray},
	{"hours.1", kindArray},
	{"hours.2", kindArray},
	{"hours.3", kindArray},
	{"hours.4", kindArray},
	{"hours.5", kindArray},
	{"hours.6", kindArray},
	{"payments", kindString},
	{"highlights", kindArray},
	{"faq", kindArray},
	{"reviews", kindArray},
	{"howToOrder", kindArray},
}

// promo is optional, but when present it must be well formed.
var promoRules = []rule{
	{"promo", kindObject},
	{"promo.enabled", kindBool},
	{"promo.text", kindString},
}

// Validate dispatches on the document key. Callers must pass a known key.
func Validate(key string, doc map[string]interface{}) string {
	switch key {
	case model.KeySite:
		return ValidateSite(doc)
	case model.KeyProducts:
		return ValidateProducts(doc)
	default:
		return fmt.Sprintf("unknown document key %q", key)
	}
}

// ValidateSite checks the site content document. Array elements (highlights,
// faq, reviews, howToOrder) are not recursed into.
func ValidateSite(doc map[string]interface{}) string {
	if msg := applyRules(doc, siteRules); msg != "" {
		return msg
	}
	if _, ok := doc["promo"]; ok {
		if msg := applyRules(doc, promoRules); msg != "" {
			return msg
		}
	}
	return ""
}

// ValidateProducts checks the catalog: categories of items, each item checked
// field by field.
func ValidateProducts(doc map[string]interface{}) string {
	cats, ok := doc["categories"]
	if !ok {
		return missing("categories")
	}
	list, ok := cats.([]interface{})
	if !ok {
		return wrongKind("categories", kindArray)
	}
	for i, c := range list {
		base := fmt.Sprintf("categories[%d]", i)
		cat, ok := c.(map[string]interface{})
		if !ok {
			return wrongKind(base, kindObject)
		}
		if msg := checkField(cat, base, "category", kindNonEmptyString); msg != "" {
			return msg
		}
		rawItems, ok := cat["items"]
		if !ok {
			return missing(base + ".items")
		}
		items, ok := rawItems.([]interface{})
		if !ok {
			return wrongKind(base+".items", kindArray)
		}
		for j, it := range items {
			itemBase := fmt.Sprintf("%s.items[%d]", base, j)
			item, ok := it.(map[string]interface{})
			if !ok {
				return wrongKind(itemBase, kindObject)
			}
			if msg := checkField(item, itemBase, "name", kindNonEmptyString); msg != "" {
				return msg
			}
			if msg := checkField(item, itemBase, "description", kindString); msg != "" {
				return msg
			}
			if msg := checkField(item, itemBase, "price", kindString); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func applyRules(doc map[string]interface{}, rules []rule) string {
	for _, r := range rules {
		val, found := walk(doc, r.path)
		if !found {
			return missing(r.path)
		}
		if !matches(val, r.kind) {
			return wrongKind(r.path, r.kind)
		}
	}
	return ""
}

// walk follows a dotted path through nested objects. A missing intermediate
// counts as absent; a non-object intermediate was already rejected by the
// parent's own rule, ordered before this one.
func walk(doc map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = doc
	for _, p := range parts {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func matches(val interface{}, k kind) bool {
	switch k {
	case kindString:
		_, ok := val.(string)
		return ok
	case kindNonEmptyString:
		s, ok := val.(string)
		return ok && strings.TrimSpace(s) != ""
	case kindBool:
		_, ok := val.(bool)
		return ok
	case kindArray:
		_, ok := val.([]interface{})
		return ok
	default:
		_, ok := val.(map[string]interface{})
		return ok
	}
}

func checkField(obj map[string]interface{}, base, name string, k kind) string {
	path := base + "." + name
	val, ok := obj[name]
	if !ok {
		return missing(path)
	}
	if !matches(val, k) {
		return wrongKind(path, k)
	}
	return ""
}

func missing(path string) string {
	return fmt.Sprintf("missing required field %q", path)
}

func wrongKind(path string, k kind) string {
	return fmt.Sprintf("field %q must be %s", path, k)
}
