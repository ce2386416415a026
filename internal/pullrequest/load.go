package pullrequest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a list of pull requests from a JSON or YAML file. The format
// follows the file extension; anything that is not .yaml/.yml is JSON.
func Load(path string) ([]Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pull requests: %w", err)
	}

	var prs []Summary
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &prs)
	default:
		err = json.Unmarshal(data, &prs)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return prs, nil
}
