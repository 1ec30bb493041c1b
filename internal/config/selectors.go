package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Selectors maps a URL substring to the CSS selector expected to contain the
// price on that site. Sites listed under HTTP are fetched with a plain GET,
// sites under Browser through the headless-browser service.
type Selectors struct {
	HTTP    map[string]string `json:"http"`
	Browser map[string]string `json:"browser"`
}

func LoadSelectors(path string) (Selectors, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var selectors Selectors
	if err := json.Unmarshal(fileBytes, &selectors); err != nil {
		return Selectors{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return selectors, nil
}
