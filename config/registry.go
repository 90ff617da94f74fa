package config

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)
)

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" ||
		option.Key == "" ||
		option.Description == "" ||
		option.ExpertiseLevel == 0 ||
		option.OptType == 0 {
		return newInvalidOptionError("all fields, except for the validation regex, are mandatory", nil)
	}

	if option.ValidationRegex != "" {
		var err error
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return newInvalidOptionError(fmt.Sprintf("could not compile validation regex of %s", option.Key), err)
		}
	}

	// check that the default value is valid for the option type
	if _, err := validateValue(option, option.DefaultValue); err != nil {
		return newInvalidOptionError(fmt.Sprintf("invalid default value for %s", option.Key), err)
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()

	options[option.Key] = option

	return nil
}

// GetOption returns the option with the given key.
func GetOption(key string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	option, ok := options[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	return option, nil
}

// ExportOptions exports the registered options. The returned data must be treated as immutable.
func ExportOptions() []*Option {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	// copy the map into a slice
	opts := make([]*Option, 0, len(options))
	for _, opt := range options {
		opts = append(opts, opt)
	}

	sort.Slice(opts, func(i, j int) bool {
		return opts[i].Key < opts[j].Key
	})
	return opts
}
