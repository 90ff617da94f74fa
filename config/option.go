package config

import (
	"regexp"
	"sync"
)

// Option type IDs.
const (
	OptTypeString      uint8 = 1
	OptTypeStringArray uint8 = 2
	OptTypeInt         uint8 = 3
	OptTypeBool        uint8 = 4
)

// Expertise levels.
const (
	ExpertiseLevelUser      uint8 = 1
	ExpertiseLevelExpert    uint8 = 2
	ExpertiseLevelDeveloper uint8 = 3
)

func getTypeName(t uint8) string {
	switch t {
	case OptTypeString:
		return "string"
	case OptTypeStringArray:
		return "[]string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex `json:"-"`

	Name            string
	Key             string // category/sub/key
	Description     string
	ExpertiseLevel  uint8
	OptType         uint8
	DefaultValue    interface{}
	ValidationRegex string `json:",omitempty"`
	RequiresRestart bool   `json:",omitempty"`

	compiledRegex      *regexp.Regexp
	activeValue        *valueCache // locked by Lock()
	activeDefaultValue *valueCache // locked by Lock()
}
