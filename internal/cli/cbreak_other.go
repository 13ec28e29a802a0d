//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package cli

import "errors"

func enableCbreak(int) (func() error, error) {
	return nil, errors.New("single-key input not supported on this platform")
}
