// Package config loads the per-epoch parameters a DH-PVSS deployment needs
// from a TOML file, the way the teacher stack loads its group and node
// configuration via github.com/BurntSushi/toml.
package config

import (
	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/pvss"
)

// Epoch is the TOML-loadable description of one epoch's committee shape
// and curve choice.
type Epoch struct {
	Threshold int    `toml:"threshold"`
	Size      int    `toml:"size"`
	Curve     string `toml:"curve"`
}

// Load reads and validates an Epoch from path.
func Load(path string) (*Epoch, error) {
	var e Epoch
	if _, err := toml.DecodeFile(path, &e); err != nil {
		return nil, xerrors.Errorf("config: decode %s: %w", path, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks the loaded parameters are usable: the curve name must
// resolve, and the committee shape must satisfy the PvssCtx precondition
// n - t - 2 > 0.
func (e *Epoch) Validate() error {
	if _, err := curve.FromName(e.Curve); err != nil {
		return err
	}
	if e.Size-e.Threshold-2 <= 0 {
		return xerrors.Errorf("config: need size-threshold-2>0, got size=%d threshold=%d: %w", e.Size, e.Threshold, pvss.ErrBadParameters)
	}
	return nil
}

// Suite resolves the configured curve name to a curve.Suite.
func (e *Epoch) Suite() (*curve.Suite, error) {
	return curve.FromName(e.Curve)
}
