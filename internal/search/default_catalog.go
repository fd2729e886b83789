package search

import (
	_ "embed"
	"log"
	"strings"
)

//go:embed catalog.yaml
var defaultCatalogYAML string

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(strings.NewReader(defaultCatalogYAML))
	if err != nil {
		log.Printf("search.DefaultCatalog: embedded catalog is invalid: %v", err)
		return &Catalog{}
	}
	return c
}
