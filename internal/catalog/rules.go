package catalog

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
)

// Field limits enforced on every write.
const (
	maxNameLen        = 100
	maxDescriptionLen = 1000
	maxCompanyLen     = 100
	maxPrice          = 100000
	maxColorLen       = 9
	maxRating         = 5
)

// Violation describes a single failed write rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the ordered list of every rule an input broke.
type Violations []Violation

// Error joins the violations into one message, in rule order.
func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.Field + " " + item.Message
	}
	return strings.Join(parts, "; ")
}

// productRules lists every write rule in the order violations are
// reported. Each check sees the whole field map so cross-field rules,
// like images falling back to imageUrl, stay single checks.
var productRules = []struct {
	field string
	check func(fields map[string]any) string
}{
	{"name", checkName},
	{"description", checkDescription},
	{"price", checkPrice},
	{"available", checkAvailable},
	{"imageUrl", checkImageURL},
	{"images", checkImages},
	{"company", checkCompany},
	{"currency", checkCurrency},
	{"colors", checkColors},
	{"reviewCount", checkReviewCount},
	{"rating", checkRating},
	{"featured", checkFeatured},
}

// knownFields covers every accepted body field. The id is accepted and
// ignored, so resubmitting a fetched record validates cleanly.
var knownFields = map[string]bool{
	"id":          true,
	"name":        true,
	"description": true,
	"price":       true,
	"available":   true,
	"imageUrl":    true,
	"images":      true,
	"company":     true,
	"currency":    true,
	"colors":      true,
	"reviewCount": true,
	"rating":      true,
	"featured":    true,
}

// ValidateProduct applies the product rule set in order and returns every
// violation found, never just the first. A nil result means the input can
// be bound with FromFields.
func ValidateProduct(fields map[string]any) Violations {
	var out Violations
	for _, rule := range productRules {
		if msg := rule.check(fields); msg != "" {
			out = append(out, Violation{Field: rule.field, Message: msg})
		}
	}
	var unknown []string
	for name := range fields {
		if !knownFields[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		out = append(out, Violation{Field: name, Message: "is not a recognized field"})
	}
	return out
}

func checkName(fields map[string]any) string {
	v, ok := fields["name"]
	if !ok {
		return "is required"
	}
	s, ok := v.(string)
	if !ok {
		return "must be a string"
	}
	if s == "" {
		return "must not be empty"
	}
	if len(s) > maxNameLen {
		return fmt.Sprintf("must be at most %d characters", maxNameLen)
	}
	return ""
}

func checkDescription(fields map[string]any) string {
	v, ok := fields["description"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return "must be a string"
	}
	if len(s) > maxDescriptionLen {
		return fmt.Sprintf("must be at most %d characters", maxDescriptionLen)
	}
	return ""
}

func checkPrice(fields map[string]any) string {
	v, ok := fields["price"]
	if !ok {
		return "is required"
	}
	n, ok := v.(float64)
	if !ok {
		return "must be a number"
	}
	if n <= 0 {
		return "must be greater than 0"
	}
	if n > maxPrice {
		return fmt.Sprintf("must be at most %d", maxPrice)
	}
	return ""
}

func checkAvailable(fields map[string]any) string {
	v, ok := fields["available"]
	if !ok {
		return "is required"
	}
	if _, ok := v.(bool); !ok {
		return "must be a boolean"
	}
	return ""
}

func checkImageURL(fields map[string]any) string {
	v, ok := fields["imageUrl"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return "must be a string"
	}
	if !validHTTPURL(s) {
		return "must be a valid http(s) URL"
	}
	return ""
}

// checkImages also owns the cross-field rule: every product needs at least
// one image, supplied either as the images list or the single imageUrl.
func checkImages(fields map[string]any) string {
	v, ok := fields["images"]
	if !ok {
		if _, single := fields["imageUrl"]; !single {
			return "or imageUrl is required"
		}
		return ""
	}
	list, ok := v.([]any)
	if !ok {
		return "must be a list of URLs"
	}
	if len(list) == 0 {
		if _, single := fields["imageUrl"]; !single {
			return "or imageUrl is required"
		}
		return ""
	}
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return fmt.Sprintf("entry %d must be a string", i)
		}
		if !validHTTPURL(s) {
			return fmt.Sprintf("entry %d must be a valid http(s) URL", i)
		}
	}
	return ""
}

func checkCompany(fields map[string]any) string {
	v, ok := fields["company"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return "must be a string"
	}
	if len(s) > maxCompanyLen {
		return fmt.Sprintf("must be at most %d characters", maxCompanyLen)
	}
	return ""
}

func checkCurrency(fields map[string]any) string {
	v, ok := fields["currency"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return "must be a string"
	}
	if s != "$" && s != "€" {
		return `must be "$" or "€"`
	}
	return ""
}

func checkColors(fields map[string]any) string {
	v, ok := fields["colors"]
	if !ok {
		return ""
	}
	list, ok := v.([]any)
	if !ok {
		return "must be a list of color codes"
	}
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return fmt.Sprintf("entry %d must be a string", i)
		}
		if !strings.HasPrefix(s, "#") {
			return fmt.Sprintf(`entry %d must start with "#"`, i)
		}
		if len(s) > maxColorLen {
			return fmt.Sprintf("entry %d must be at most %d characters", i, maxColorLen)
		}
	}
	return ""
}

func checkReviewCount(fields map[string]any) string {
	v, ok := fields["reviewCount"]
	if !ok {
		return ""
	}
	n, ok := v.(float64)
	if !ok {
		return "must be a number"
	}
	if n < 0 || n != math.Trunc(n) {
		return "must be a non-negative integer"
	}
	return ""
}

func checkRating(fields map[string]any) string {
	v, ok := fields["rating"]
	if !ok {
		return ""
	}
	n, ok := v.(float64)
	if !ok {
		return "must be a number"
	}
	if n < 0 || n > maxRating {
		return fmt.Sprintf("must be between 0 and %d", maxRating)
	}
	return ""
}

func checkFeatured(fields map[string]any) string {
	v, ok := fields["featured"]
	if !ok {
		return ""
	}
	if _, ok := v.(bool); !ok {
		return "must be a boolean"
	}
	return ""
}

// validHTTPURL reports whether s parses as an absolute http or https URL.
func validHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
