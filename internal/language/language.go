package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var english = display.English.Languages()

// DisplayName returns a human-readable name for an ISO 639 language tag as
// found in container metadata ("eng", "ja", "en-US"). Unrecognized tags are
// returned uppercased; empty or undetermined tags read as "Unknown".
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return "Unknown"
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := english.Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// DisplayNames maps DisplayName over a list of tags, preserving order.
func DisplayNames(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, DisplayName(code))
	}
	return names
}
