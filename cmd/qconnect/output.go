package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// render writes v in the configured output format. A nil value prints
// nothing.
func render(w io.Writer, format string, v any) error {
	if v == nil {
		return nil
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text":
		return renderText(w, v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// renderText prints scalars as-is, objects as sorted "key<TAB>value" lines
// and arrays one element per line. Nested values are compact JSON.
func renderText(w io.Writer, v any) error {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", k, textScalar(x[k])); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range x {
			if _, err := fmt.Fprintln(w, textScalar(item)); err != nil {
				return err
			}
		}
	default:
		_, err := fmt.Fprintln(w, textScalar(x))
		return err
	}
	return nil
}

func textScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]any, []any, map[string]string:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
