// Package version reports the linqkit build version.
//
//	go build -ldflags "-X github.com/kbukum/linqkit/version.Version=1.0.0"
package version
