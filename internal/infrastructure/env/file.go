package env

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a flat YAML mapping of config keys, e.g.
//
//	FIXBRIDGE_PORT: 5010
//	FIXBRIDGE_HEADLESS: true
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values[k] = val
		case bool:
			values[k] = strconv.FormatBool(val)
		case int:
			values[k] = strconv.Itoa(val)
		case float64:
			values[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("config %s: key %s: unsupported value %T", path, k, v)
		}
	}
	return values, nil
}
