package report

import (
	"fmt"
	"path/filepath"

	"github.com/gosimple/slug"
)

// OutputPath builds a predictable file path for one report of an account.
// Account and kind go through slug so that quoted identifiers and locators
// with special characters stay filesystem-safe.
func OutputPath(dir, account, kind, ext string) string {
	name := fmt.Sprintf("%s-%s.%s", slug.Make(account), slug.Make(kind), ext)
	return filepath.Join(dir, name)
}
