// Package catalog defines the product record, the write-validation rule
// set, and the in-memory page shaping used by the list endpoint.
package catalog

// Product is the catalog record persisted in the products table. Optional
// fields carry omitempty on both tag sets so absent values stay absent in
// responses and in storage.
type Product struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description" dynamodbav:"description"`
	Price       float64  `json:"price" dynamodbav:"price"`
	Available   bool     `json:"available" dynamodbav:"available"`
	ImageURL    string   `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	Images      []string `json:"images,omitempty" dynamodbav:"images,omitempty"`
	Company     string   `json:"company,omitempty" dynamodbav:"company,omitempty"`
	Currency    string   `json:"currency,omitempty" dynamodbav:"currency,omitempty"`
	Colors      []string `json:"colors,omitempty" dynamodbav:"colors,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty" dynamodbav:"reviewCount,omitempty"`
	Rating      *float64 `json:"rating,omitempty" dynamodbav:"rating,omitempty"`
	Featured    *bool    `json:"featured,omitempty" dynamodbav:"featured,omitempty"`
}

// FromFields binds a validated field map to a Product. Callers run
// ValidateProduct first; values of the wrong type and any client-supplied
// id are dropped. When only the single imageUrl was sent, the media list
// is derived from it so both record versions read back coherently.
func FromFields(fields map[string]any) Product {
	var p Product
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := fields["available"].(bool); ok {
		p.Available = v
	}
	if v, ok := fields["imageUrl"].(string); ok {
		p.ImageURL = v
	}
	p.Images = stringList(fields["images"])
	if v, ok := fields["company"].(string); ok {
		p.Company = v
	}
	if v, ok := fields["currency"].(string); ok {
		p.Currency = v
	}
	p.Colors = stringList(fields["colors"])
	if v, ok := fields["reviewCount"].(float64); ok {
		n := int(v)
		p.ReviewCount = &n
	}
	if v, ok := fields["rating"].(float64); ok {
		r := v
		p.Rating = &r
	}
	if v, ok := fields["featured"].(bool); ok {
		f := v
		p.Featured = &f
	}
	if len(p.Images) == 0 && p.ImageURL != "" {
		p.Images = []string{p.ImageURL}
	}
	return p
}

// stringList converts a decoded JSON list to []string, or nil if the value
// is not a list of strings.
func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
