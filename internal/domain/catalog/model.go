package catalog

// Topic represents one learning unit within the catalog.
type Topic struct {
	ID    int
	Slug  string
	Title string
	Body  string
}
