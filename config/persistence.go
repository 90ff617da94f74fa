package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/randbase/randbase/log"
)

// loadConfigFile reads the configuration file and applies all values it holds. Unknown keys and invalid values are collected and reported together, valid values are applied regardless.
func loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return errors.New("config file must hold a JSON object")
	}

	values := make(map[string]interface{})
	flattenJSON(values, parsed, "")

	var errs *multierror.Error
	applied := 0
	for key, value := range values {
		if err := SetConfigOption(key, value); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		applied++
	}

	log.Infof("config: applied %d values from %s", applied, path)
	return errs.ErrorOrNil()
}

// flattenJSON walks a hierarchical json object and collects leaves with their slash separated key paths.
func flattenJSON(values map[string]interface{}, obj gjson.Result, keyPrefix string) {
	obj.ForEach(func(key, value gjson.Result) bool {
		subbedKey := key.String()
		if keyPrefix != "" {
			subbedKey = keyPrefix + "/" + subbedKey
		}

		if value.IsObject() {
			flattenJSON(values, value, subbedKey)
		} else {
			values[subbedKey] = value.Value()
		}
		return true
	})
}

// ExportConfig renders the active configuration as a hierarchical json document.
func ExportConfig() ([]byte, error) {
	data := []byte("{}")

	for _, option := range ExportOptions() {
		option.Lock()
		active := option.activeValue
		option.Unlock()
		if active == nil {
			continue
		}

		var err error
		data, err = sjson.SetBytes(data, strings.ReplaceAll(option.Key, "/", "."), active.getData(option))
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", option.Key, err)
		}
	}

	return data, nil
}

// SaveConfigFile writes the active configuration to the given file.
func SaveConfigFile(path string) error {
	data, err := ExportConfig()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
