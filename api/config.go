package api

import (
	"flag"

	"github.com/randbase/randbase/config"
)

// CfgListenAddressKey is the config key for the API listen address.
const CfgListenAddressKey = "api/listen_address"

var (
	listenAddressFlag    string
	listenAddressConfig  config.StringOption
	defaultListenAddress = "127.0.0.1:8417"
)

func init() {
	flag.StringVar(&listenAddressFlag, "api-address", "", "override api listen address")
}

func getDefaultListenAddress() string {
	// check if overridden
	if listenAddressFlag != "" {
		return listenAddressFlag
	}
	// return internal default
	return defaultListenAddress
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "API Listen Address",
		Key:             CfgListenAddressKey,
		Description:     "Defines the IP address and port the API listens on.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelExpert,
		DefaultValue:    getDefaultListenAddress(),
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	listenAddressConfig = config.GetAsString(CfgListenAddressKey, getDefaultListenAddress())

	return nil
}

// SetDefaultListenAddress sets the default listen address for the API. Must be called before the api module preps.
func SetDefaultListenAddress(address string) {
	defaultListenAddress = address
}
