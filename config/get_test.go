package config

import (
	"testing"

	"github.com/randbase/randbase/log"
)

func registerTestOption(t *testing.T, key string, optType uint8, defaultValue interface{}) {
	t.Helper()
	err := Register(&Option{
		Name:           key,
		Key:            key,
		Description:    "test option",
		ExpertiseLevel: ExpertiseLevelUser,
		OptType:        optType,
		DefaultValue:   defaultValue,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGet(t *testing.T) {
	err := log.Start()
	if err != nil {
		t.Fatal(err)
	}

	registerTestOption(t, "zoo/monkey", OptTypeString, "0")
	registerTestOption(t, "zoo/elephant", OptTypeInt, 0)
	registerTestOption(t, "zoo/hot", OptTypeBool, false)
	registerTestOption(t, "zoo/zebra", OptTypeStringArray, []string{})

	if err := SetConfigOption("zoo/monkey", "1"); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigOption("zoo/elephant", 2); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigOption("zoo/hot", true); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigOption("zoo/zebra", []string{"black", "white"}); err != nil {
		t.Fatal(err)
	}

	monkey := GetAsString("zoo/monkey", "none")
	if monkey() != "1" {
		t.Fatalf("monkey should be 1, is %s", monkey())
	}

	elephant := GetAsInt("zoo/elephant", -1)
	if elephant() != 2 {
		t.Fatalf("elephant should be 2, is %d", elephant())
	}

	hot := GetAsBool("zoo/hot", false)
	if !hot() {
		t.Fatalf("hot should be true, is %v", hot())
	}

	zebra := GetAsStringArray("zoo/zebra", []string{})
	if len(zebra()) != 2 || zebra()[0] != "black" || zebra()[1] != "white" {
		t.Fatalf("zebra should be [\"black\", \"white\"], is %v", zebra())
	}

	// accessors must see changes
	if err := SetConfigOption("zoo/monkey", "3"); err != nil {
		t.Fatal(err)
	}
	if monkey() != "3" {
		t.Fatalf("monkey should be 3, is %s", monkey())
	}

	// unsetting falls back to the default value
	if err := SetConfigOption("zoo/elephant", nil); err != nil {
		t.Fatal(err)
	}
	if elephant() != 0 {
		t.Fatalf("elephant should be 0, is %d", elephant())
	}

	// default config layer
	if err := SetDefaultConfigOption("zoo/elephant", 7); err != nil {
		t.Fatal(err)
	}
	if elephant() != 7 {
		t.Fatalf("elephant should be 7, is %d", elephant())
	}
	// user value wins over default layer
	if err := SetConfigOption("zoo/elephant", 2); err != nil {
		t.Fatal(err)
	}
	if elephant() != 2 {
		t.Fatalf("elephant should be 2, is %d", elephant())
	}

	// unregistered options return the fallback
	snake := GetAsString("zoo/snake", "hiss")
	if snake() != "hiss" {
		t.Fatalf("snake should be hiss, is %s", snake())
	}

	// type mismatches are rejected
	if err := SetConfigOption("zoo/monkey", 1); err == nil {
		t.Fatal("should fail")
	}
	if err := SetConfigOption("zoo/hot", "very"); err == nil {
		t.Fatal("should fail")
	}
	if err := SetConfigOption("does/not/exist", true); err == nil {
		t.Fatal("should fail")
	}
}
