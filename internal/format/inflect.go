package format

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Inflector produces the count-bearing phrases shown to the reader. All
// rendering goes through it, so grammatical number lives in one place.
type Inflector interface {
	Pages(n int) string
	Days(n int) string
	Materials(n int) string
}

type english struct {
	printer *message.Printer
}

// NewEnglish builds the English inflector.
func NewEnglish() Inflector {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	builder.Set(language.English, "%d page(s)", plural.Selectf(1, "",
		plural.One, "%d page",
		plural.Other, "%d pages"))
	builder.Set(language.English, "%d day(s)", plural.Selectf(1, "",
		plural.One, "%d day",
		plural.Other, "%d days"))
	builder.Set(language.English, "%d material(s)", plural.Selectf(1, "",
		plural.One, "%d material",
		plural.Other, "%d materials"))

	return &english{printer: message.NewPrinter(language.English, message.Catalog(builder))}
}

func (e *english) Pages(n int) string {
	return e.printer.Sprintf("%d page(s)", n)
}

func (e *english) Days(n int) string {
	return e.printer.Sprintf("%d day(s)", n)
}

func (e *english) Materials(n int) string {
	return e.printer.Sprintf("%d material(s)", n)
}
