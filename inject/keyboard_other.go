//go:build !linux

package inject

import "voxkey/keys"

type Keyboard struct{}

func New() (*Keyboard, error) { return nil, ErrUnsupported }

func (k *Keyboard) Press(keys.Token) error   { return ErrUnsupported }
func (k *Keyboard) Release(keys.Token) error { return ErrUnsupported }
