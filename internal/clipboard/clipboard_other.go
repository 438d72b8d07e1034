//go:build !cgo && !windows && !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

func writePayload(Payload) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard image operations require cgo on this platform")
}
