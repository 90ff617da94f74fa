package config

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/key",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "banana",
		ValidationRegex: "^(banana|water)$",
	}); err != nil {
		t.Error(err)
	}

	// missing option type
	if err := Register(&Option{
		Name:           "name",
		Key:            "registry/key",
		Description:    "description",
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        0,
		DefaultValue:   "default",
	}); err == nil {
		t.Error("should fail")
	}

	// broken validation regex
	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/key",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "default",
		ValidationRegex: "[",
	}); err == nil {
		t.Error("should fail")
	}

	// default value not matching the validation regex
	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/key2",
		Description:     "description",
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "cherry",
		ValidationRegex: "^(banana|water)$",
	}); err == nil {
		t.Error("should fail")
	}

	// default value of the wrong type
	if err := Register(&Option{
		Name:           "name",
		Key:            "registry/key3",
		Description:    "description",
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        OptTypeInt,
		DefaultValue:   "one",
	}); err == nil {
		t.Error("should fail")
	}

	// values not matching the regex are rejected
	if err := SetConfigOption("registry/key", "water"); err != nil {
		t.Error(err)
	}
	if err := SetConfigOption("registry/key", "cherry"); err == nil {
		t.Error("should fail")
	}

	opt, err := GetOption("registry/key")
	if err != nil {
		t.Fatal(err)
	}
	if opt.Name != "name" {
		t.Errorf("unexpected option: %+v", opt)
	}
}
