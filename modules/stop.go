package modules

import (
	"errors"
	"fmt"

	"github.com/tevino/abool"

	"github.com/randbase/randbase/log"
)

var (
	shutdownSignal         = make(chan struct{})
	shutdownSignalClosed   = abool.NewBool(false)
	shutdownCompleteSignal = make(chan struct{})
)

// ShuttingDown returns a channel read on the global shutdown signal.
func ShuttingDown() <-chan struct{} {
	return shutdownSignal
}

func checkStopStatus() (readyToStop []*Module, done bool) {
	active := 0

	for _, m := range modules {
		if m.Started.IsSet() && !m.Stopped.IsSet() {
			active++
			if m.ReadyToStop() {
				readyToStop = append(readyToStop, m)
			}
		}
	}

	return readyToStop, active == 0
}

// Shutdown stops all modules in the correct order.
func Shutdown() error {

	if shutdownSignalClosed.SetToIf(false, true) {
		close(shutdownSignal)
	} else {
		// shutdown was already issued
		return errors.New("shutdown already initiated")
	}

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
		logActiveModules()
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	modulesLock.Lock()
	err := stopModules()
	modulesLock.Unlock()
	if err != nil {
		log.Error(err.Error())
	}

	log.Info("modules: shutdown complete")
	log.Shutdown()
	close(shutdownCompleteSignal)
	return err
}

func stopModules() error {
	reports := make(chan *report)

	for {
		readyToStop, done := checkStopStatus()
		if done {
			return nil
		}

		if len(readyToStop) == 0 {
			return fmt.Errorf("modules: dependency loop detected while stopping, cannot continue")
		}

		for _, m := range readyToStop {
			m.inTransition.Set()

			execM := m
			go func() {
				reports <- &report{
					module: execM,
					err:    execM.shutdown(),
				}
			}()
		}

		var firstErr error
		for range readyToStop {
			rep := <-reports
			rep.module.inTransition.UnSet()
			rep.module.Stopped.Set()
			if rep.err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("modules: could not stop module %s: %s", rep.module.Name, rep.err)
				}
				continue
			}
			log.Infof("modules: stopped %s", rep.module.Name)
		}
		if firstErr != nil {
			return firstErr
		}
	}
}
