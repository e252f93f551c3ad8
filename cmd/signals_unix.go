//go:build !windows

package cmd

import (
	"os"
	"os/signal"
	"syscall"
)

// pauseToggle turns SIGUSR1 into pause/resume toggles.
func pauseToggle() (<-chan struct{}, func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)
	toggle := make(chan struct{})
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
				select {
				case toggle <- struct{}{}:
				case <-quit:
					return
				}
			case <-quit:
				return
			}
		}
	}()
	return toggle, func() {
		signal.Stop(sigs)
		close(quit)
	}
}
