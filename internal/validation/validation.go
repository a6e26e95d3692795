// Package validation applies struct-tag validation to decoded request
// documents before any of their contents reach the catalogue.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/antigravity/transitcat/internal/schema"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Document validates every section of doc present in the request.
// A non-nil error is an input-schema error: the caller must abort the
// whole invocation without touching the catalogue. validator.Struct
// recurses into nested structs and non-nil struct pointers on its own,
// and into the request slices through their dive tags, so one call
// covers the whole document.
func Document(doc *schema.Document) error {
	if err := validate.Struct(doc); err != nil {
		return describe(err)
	}
	return nil
}

// describe renders validator.ValidationErrors as one diagnostic line
// per offending field (field path + tag), per SPEC_FULL.md §7.
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		lines = append(lines, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation: %s", strings.Join(lines, "\n"))
}
