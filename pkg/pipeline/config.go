package pipeline

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mailgrid/pkg/errors"
)

// LoadOptions reads options from a TOML file. Unknown keys are rejected so
// typos do not silently fall back to defaults.
//
//	stacking = "first-wins"
//	order = "back-to-front"
//	links = "both"
//	exporter = "sketchtool"
//	sketch_file = "newsletter.sketch"
func LoadOptions(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidOption, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}
