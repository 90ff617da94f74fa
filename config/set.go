package config

import (
	"sync"

	"github.com/tevino/abool"
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the config's validity flag as dirty, so that get-functions refresh their cached values.
func signalChanges() {
	validityFlagLock.Lock()
	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
	validityFlagLock.Unlock()
}

// SetConfigOption sets a single value in the (prioritized) user defined config. Set the value to nil to unset it.
func SetConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		option.activeValue = nil
	} else {
		var cached *valueCache
		cached, err = validateValue(option, value)
		if err == nil {
			option.activeValue = cached
		}
	}
	option.Unlock()

	if err != nil {
		return err
	}

	// finalize change
	signalChanges()
	return nil
}

// SetDefaultConfigOption sets a single value in the (fallback) default config. Set the value to nil to unset it.
func SetDefaultConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		option.activeDefaultValue = nil
	} else {
		var cached *valueCache
		cached, err = validateValue(option, value)
		if err == nil {
			option.activeDefaultValue = cached
		}
	}
	option.Unlock()

	if err != nil {
		return err
	}

	// finalize change
	signalChanges()
	return nil
}
