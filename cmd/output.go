package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"lightbnb/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readNewProperty decodes a property listing from a YAML document.
// Unknown keys are rejected so a misspelt column is not silently dropped.
func readNewProperty(r io.Reader) (models.NewProperty, error) {
	var p models.NewProperty
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return models.NewProperty{}, fmt.Errorf("decode property: %w", err)
	}
	return p, nil
}

func loadNewProperty(path string) (models.NewProperty, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.NewProperty{}, err
	}
	defer f.Close()
	return readNewProperty(f)
}
