package domain

// Category is a distinct product category label together with its URL slug.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
