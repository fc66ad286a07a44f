package ids

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixObject  = "obj"
	PrefixSession = "sess"
	PrefixHistory = "hist"
	PrefixExport  = "exp"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewObjectID() string  { return New(PrefixObject) }
func NewSessionID() string { return New(PrefixSession) }
func NewHistoryID() string { return New(PrefixHistory) }
func NewExportID() string  { return New(PrefixExport) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
