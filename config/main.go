package config

import (
	"flag"
	"os"

	"github.com/randbase/randbase/log"
	"github.com/randbase/randbase/modules"
)

var configFilePath string

func init() {
	modules.Register("config", nil, start, nil)

	flag.StringVar(&configFilePath, "config", "", "set path to the configuration file")
}

func start() error {
	if configFilePath == "" {
		return nil
	}

	err := loadConfigFile(configFilePath)
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		log.Warningf("config: configuration file %s does not exist", configFilePath)
		return nil
	default:
		// invalid values were skipped, defaults apply for them
		log.Warningf("config: failed to fully apply configuration file: %s", err)
		return nil
	}
}
