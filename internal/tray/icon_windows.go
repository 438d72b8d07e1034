//go:build windows

package tray

import "github.com/example/regionshot/assets"

func iconBytes() ([]byte, error) { return assets.IconICO(32) }
