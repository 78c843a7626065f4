package catalog

import "github.com/rotisserie/eris"

// ErrDuplicateSlug indicates an attempt to add a topic whose slug is already taken.
var ErrDuplicateSlug = eris.New("topic slug already exists")

// ErrTopicNotFound indicates a lookup of a topic that is not in the catalog.
var ErrTopicNotFound = eris.New("topic not found")
