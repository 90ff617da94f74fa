package config

import (
	"sync"

	"github.com/randbase/randbase/log"
)

type (
	// StringOption defines the returned function by GetAsString.
	StringOption func() string
	// StringArrayOption defines the returned function by GetAsStringArray.
	StringArrayOption func() []string
	// IntOption defines the returned function by GetAsInt.
	IntOption func() int64
	// BoolOption defines the returned function by GetAsBool.
	BoolOption func() bool
)

// GetAsString returns a function that returns the wanted string with high performance. The returned function is concurrency safe.
func GetAsString(name string, fallback string) StringOption {
	valid := getValidityFlag()
	value := findStringValue(name, fallback)
	var lock sync.Mutex
	return func() string {
		lock.Lock()
		defer lock.Unlock()
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findStringValue(name, fallback)
		}
		return value
	}
}

// GetAsStringArray returns a function that returns the wanted string array with high performance. The returned function is concurrency safe.
func GetAsStringArray(name string, fallback []string) StringArrayOption {
	valid := getValidityFlag()
	value := findStringArrayValue(name, fallback)
	var lock sync.Mutex
	return func() []string {
		lock.Lock()
		defer lock.Unlock()
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findStringArrayValue(name, fallback)
		}
		return value
	}
}

// GetAsInt returns a function that returns the wanted int with high performance. The returned function is concurrency safe.
func GetAsInt(name string, fallback int64) IntOption {
	valid := getValidityFlag()
	value := findIntValue(name, fallback)
	var lock sync.Mutex
	return func() int64 {
		lock.Lock()
		defer lock.Unlock()
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findIntValue(name, fallback)
		}
		return value
	}
}

// GetAsBool returns a function that returns the wanted bool with high performance. The returned function is concurrency safe.
func GetAsBool(name string, fallback bool) BoolOption {
	valid := getValidityFlag()
	value := findBoolValue(name, fallback)
	var lock sync.Mutex
	return func() bool {
		lock.Lock()
		defer lock.Unlock()
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findBoolValue(name, fallback)
		}
		return value
	}
}

// findValue finds the correct value in the user or default config.
func findValue(key string) *valueCache {
	optionsLock.RLock()
	option, ok := options[key]
	optionsLock.RUnlock()
	if !ok {
		log.Errorf("config: request for unregistered option: %s", key)
		return nil
	}

	option.Lock()
	defer option.Unlock()

	if option.activeValue != nil {
		return option.activeValue
	}

	if option.activeDefaultValue != nil {
		return option.activeDefaultValue
	}

	valueCache, err := validateValue(option, option.DefaultValue)
	if err != nil {
		log.Errorf("config: invalid default value for %s: %s", key, err)
		return nil
	}
	return valueCache
}

// findStringValue validates and returns the value with the given key.
func findStringValue(key string, fallback string) (value string) {
	cached := findValue(key)
	if cached == nil {
		return fallback
	}
	return cached.stringVal
}

// findStringArrayValue validates and returns the value with the given key.
func findStringArrayValue(key string, fallback []string) (value []string) {
	cached := findValue(key)
	if cached == nil {
		return fallback
	}
	return cached.stringArrayVal
}

// findIntValue validates and returns the value with the given key.
func findIntValue(key string, fallback int64) (value int64) {
	cached := findValue(key)
	if cached == nil {
		return fallback
	}
	return cached.intVal
}

// findBoolValue validates and returns the value with the given key.
func findBoolValue(key string, fallback bool) (value bool) {
	cached := findValue(key)
	if cached == nil {
		return fallback
	}
	return cached.boolVal
}
