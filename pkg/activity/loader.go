package activity

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// seedEntry is one element of the "activities" list in a seed file. A list
// is used instead of a map because viper lower cases map keys and activity
// names are case sensitive.
type seedEntry struct {
	Name     string `mapstructure:"name"`
	Activity `mapstructure:",squash"`
}

type seedFile struct {
	Activities []seedEntry `mapstructure:"activities"`
}

// LoadSeedFile reads activities from a YAML, JSON or TOML file. The format is
// picked from the file extension. A leading ~ in path is expanded.
func LoadSeedFile(path string) (map[string]Activity, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to expand seed file path %s", path)
	}

	v := viper.New()
	v.SetConfigFile(expandedPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "unable to read seed file %s", expandedPath)
	}

	var f seedFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, errors.Wrapf(err, "unable to decode seed file %s", expandedPath)
	}

	if len(f.Activities) == 0 {
		return nil, fmt.Errorf("seed file %s contains no activities", expandedPath)
	}

	seed := make(map[string]Activity, len(f.Activities))
	for _, entry := range f.Activities {
		if _, ok := seed[entry.Name]; ok {
			return nil, fmt.Errorf("seed file %s: activity %q listed twice", expandedPath, entry.Name)
		}
		seed[entry.Name] = entry.Activity
	}

	return seed, nil
}
