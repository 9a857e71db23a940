package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

// Load errors. These are returned, wrapped with context, by the cartridge
// constructors. Use errors.Cause to compare.
var (
	ErrBadMagic          = errors.New("bad iNES magic")
	ErrUnsupportedFormat = errors.New("unsupported ROM container format")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrTruncatedRom      = errors.New("truncated ROM image")
	ErrProgramTooLarge   = errors.New("program does not fit in PRG window")
)

// ConsistencyError signals an internal defect: a mapper produced an offset
// outside its storage, or nothing claimed an address that must be claimed.
// It is raised with panic and is not meant to be recovered by the core.
type ConsistencyError struct {
	Component string
	Op        string
	Addr      uint16
	Detail    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s at $%04X: %s", e.Component, e.Op, e.Addr, e.Detail)
}

func consistencyPanic(component, op string, addr uint16, format string, args ...interface{}) {
	panic(&ConsistencyError{
		Component: component,
		Op:        op,
		Addr:      addr,
		Detail:    fmt.Sprintf(format, args...),
	})
}
