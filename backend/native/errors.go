// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors.
var (
	// ErrNilDevice is returned when a nil hal.Device or hal.Queue is passed.
	ErrNilDevice = errors.New("native: nil device or queue")

	// ErrNoHAL is returned when a provider does not expose HAL handles.
	ErrNoHAL = errors.New("native: provider does not expose HAL device")

	// ErrInvalidBufferSize is returned for zero-sized buffers.
	ErrInvalidBufferSize = errors.New("native: invalid buffer size")

	// ErrUnknownBuffer is returned or recorded when a buffer id is not live.
	ErrUnknownBuffer = errors.New("native: unknown buffer")

	// ErrUnknownBindGroup is recorded by Pass when a bind group id is not registered.
	ErrUnknownBindGroup = errors.New("native: unknown bind group")

	// ErrConstantsExhausted is recorded by Pass when a pass sets more
	// constants than the pipeline has uniform slots.
	ErrConstantsExhausted = errors.New("native: constant slots exhausted")

	// ErrInvalidConstants is recorded by Pass for constant blocks of the
	// wrong size.
	ErrInvalidConstants = errors.New("native: invalid constants block")
)
