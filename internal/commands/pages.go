// internal/commands/pages.go
package biostat

import (
	"fmt"
	"strings"

	"github.com/mwiater/biostat/internal/pages"
)

// findPage looks a page up by name or by its route.
func findPage(catalog *pages.Catalog, name string) (*pages.Page, error) {
	p, ok := catalog.Page(strings.TrimPrefix(name, "/"))
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return p, nil
}
