package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestPersistence(t *testing.T) {
	registerTestOption(t, "persistence/max_length", OptTypeInt, 100000)
	registerTestOption(t, "persistence/listen_address", OptTypeString, "127.0.0.1:8417")
	registerTestOption(t, "persistence/colors", OptTypeBool, true)

	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
  "persistence": {
    "max_length": 4096,
    "listen_address": "127.0.0.1:9000"
  }
}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	if err := loadConfigFile(path); err != nil {
		t.Fatal(err)
	}

	maxLength := GetAsInt("persistence/max_length", -1)
	if maxLength() != 4096 {
		t.Errorf("max_length should be 4096, is %d", maxLength())
	}
	listen := GetAsString("persistence/listen_address", "")
	if listen() != "127.0.0.1:9000" {
		t.Errorf("listen_address should be 127.0.0.1:9000, is %s", listen())
	}
	colors := GetAsBool("persistence/colors", false)
	if !colors() {
		t.Errorf("colors should have kept its default")
	}

	// unknown keys are reported, valid values still apply
	err = os.WriteFile(path, []byte(`{
  "persistence": {
    "max_length": 1024,
    "bogus": 1
  }
}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if err := loadConfigFile(path); err == nil {
		t.Error("should report unknown key")
	}
	if maxLength() != 1024 {
		t.Errorf("max_length should be 1024, is %d", maxLength())
	}

	// exporting renders the active values hierarchically
	data, err := ExportConfig()
	if err != nil {
		t.Fatal(err)
	}
	if v := gjson.GetBytes(data, "persistence.max_length").Int(); v != 1024 {
		t.Errorf("exported max_length should be 1024, is %d (export: %s)", v, data)
	}

	// write and reload
	exportPath := filepath.Join(t.TempDir(), "export.json")
	if err := SaveConfigFile(exportPath); err != nil {
		t.Fatal(err)
	}
	if err := loadConfigFile(exportPath); err != nil {
		t.Fatal(err)
	}
}
