// Package qrstyle describes how a QR code looks: size, shape, colors,
// gradients and the options of each drawn region.
//
// FormState is the complete description. PartialFormState is a sparse
// overlay of it; presets are named overlays whose Config builds a fresh
// value on every call, so callers may mutate what they get back.
// The package has no rendering logic of its own, see pkg/qrcode.
package qrstyle
