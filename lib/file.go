package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/json"
	"github.com/oarkflow/msgpack"
)

// ReadMappingFile loads a word-to-columns dump. JSON dumps come from the
// export tooling; msgpack dumps are the compact form the loader emits for
// large vocabularies.
func ReadMappingFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mappings := make(map[string][]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		if err := msgpack.Unmarshal(data, &mappings); err != nil {
			return nil, fmt.Errorf("decode msgpack mapping file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &mappings); err != nil {
			return nil, fmt.Errorf("decode json mapping file %s: %w", path, err)
		}
	}
	return mappings, nil
}

// WriteMappingFile dumps mappings in the format implied by the extension.
func WriteMappingFile(path string, mappings map[string][]string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		data, err = msgpack.Marshal(mappings)
	default:
		data, err = json.Marshal(mappings)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
