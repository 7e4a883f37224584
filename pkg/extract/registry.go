package extract

import (
	"fmt"
	"sort"
)

// Factory builds an extractor for one content type. The language hint
// is only meaningful for code extraction; other factories ignore it.
type Factory func(language string) Extractor

// registry maps content types to their extractor factories. It is
// process-wide state: populate it via Register during single-threaded
// startup, before any concurrent extraction begins.
var registry = map[ContentType]Factory{
	TypeJSON: func(string) Extractor { return NewJSON(JSONConfig{}) },
	TypeXML:  func(string) Extractor { return NewXML(DefaultXMLConfig()) },
	TypeHTML: func(string) Extractor { return NewHTML(HTMLConfig{}) },
	TypeCode: func(language string) Extractor { return NewCode(CodeConfig{Language: language}) },
}

// Register overwrites the extractor factory for a content type. All
// subsequent Extract calls for that type use the new factory. Not safe
// to call concurrently with in-flight extractions.
func Register(contentType ContentType, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: nil factory for content type %q", ErrInvalidExtractor, contentType)
	}
	registry[contentType] = factory
	return nil
}

func lookup(contentType ContentType) (Factory, bool) {
	f, ok := registry[contentType]
	return f, ok
}

// AvailableTypes returns the registered content type tags, sorted.
func AvailableTypes() []string {
	types := make([]string, 0, len(registry))
	for ct := range registry {
		types = append(types, string(ct))
	}
	sort.Strings(types)
	return types
}
