package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"

	"github.com/randbase/randbase/config"
	"github.com/randbase/randbase/modules"
)

var (
	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = false

	rngCipherOption    config.StringOption
	minFeedEntropy     config.IntOption
	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption

	module *modules.Module
)

func init() {
	module = modules.Register("rng", prep, start, stop, "config")
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             "rng/cipher",
		Description:     "Cipher to use for the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.GetAsString("rng/cipher", "aes")

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             "rng/min_feed_entropy",
		Description:     "The minimum amount of entropy before the collected pool is fed to the RNG, in bits.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.GetAsInt("rng/min_feed_entropy", 256)

	err = config.Register(&config.Option{
		Name:            "Reseed After Seconds",
		Key:             "rng/reseed_after_seconds",
		Description:     "Number of seconds until the RNG is reseeded.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    600,
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.GetAsInt("rng/reseed_after_seconds", 600)

	err = config.Register(&config.Option{
		Name:            "Reseed After Bytes",
		Key:             "rng/reseed_after_bytes",
		Description:     "Number of served bytes until the RNG is reseeded.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    1000000,
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.GetAsInt("rng/reseed_after_bytes", 1000000)

	return nil
}

func newCipher(key []byte) (cipher.Block, error) {
	switch rngCipherOption() {
	case "aes":
		return aes.NewCipher(key)
	case "serpent":
		return serpent.NewCipher(key)
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", rngCipherOption())
	}
}

func start() error {
	rngLock.Lock()
	rng = fortuna.NewGenerator(newCipher)
	rngReady = true
	rngLock.Unlock()

	// seed the generator before serving anything
	if err := feedInitialEntropy(); err != nil {
		return err
	}

	// random source: OS
	module.StartServiceWorker("os feeder", 0, osFeeder)

	// random source: goroutine scheduling jitter
	module.StartServiceWorker("tick feeder", 0, tickFeeder)

	// full feeder mixes the collected entropy into the generator
	module.StartServiceWorker("full feeder", 0, fullFeeder)

	return nil
}

func stop() error {
	rngLock.Lock()
	defer rngLock.Unlock()
	rngReady = false
	return nil
}
