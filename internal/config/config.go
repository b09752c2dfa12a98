// Package config validates the tunable cost parameters accepted at the public façade, the one
// place in this module where caller-supplied configuration needs more than a single-error report.
package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Minimum accepted Argon2id cost parameters. Values below these make a passphrase-sealed
// SecretKey brute-forceable on commodity hardware in practical time.
const (
	MinTime   = 1
	MinMemory = 8 * 1024 // KiB
)

// PBENCParams holds the caller-supplied Argon2id cost parameters for SecretKey.Encrypt.
type PBENCParams struct {
	Time   uint32
	Memory uint32
}

// Validate reports every parameter that falls below the accepted minimum, combined into a single
// error so a caller fixing its configuration sees all problems at once rather than one at a time.
func (p PBENCParams) Validate() error {
	var errs *multierror.Error
	if p.Time < MinTime {
		errs = multierror.Append(errs, fmt.Errorf("time cost %d below minimum %d", p.Time, MinTime))
	}
	if p.Memory < MinMemory {
		errs = multierror.Append(errs, fmt.Errorf("memory cost %d below minimum %d", p.Memory, MinMemory))
	}
	return errs.ErrorOrNil()
}
