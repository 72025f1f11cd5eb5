package filesystem

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/labhub/core"
)

// supported extensions, in lookup order
var extensions = []string{".json", ".yaml", ".yml"}

func isDataFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// findFile returns the first existing "<dir>/<base><ext>", or "" if there is none.
func findFile(dir, base string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, base+ext)
		fi, err := os.Stat(path)
		if err == nil && !fi.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "stat %s", path)
		}
	}
	return "", nil
}

// decodeFile decodes a JSON or YAML file into v.
// Any decoding problem (e.g. an object where a list is expected) is a configuration error.
func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = errors.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return core.NewConfigError(errors.Wrapf(err, "decoding %s", path))
	}
	return nil
}
