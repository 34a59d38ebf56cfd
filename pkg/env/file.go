package env

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays the YAML file onto target. Flags explicitly set
// on fs are re-applied afterwards so the command line always wins.
// An empty path is a no-op.
func LoadFile(fs *flag.FlagSet, path string, target interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	for name, val := range explicit {
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("re-apply flag -%s: %w", name, err)
		}
	}
	return nil
}
