package qr

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// ErrCapacity is returned when data does not fit the requested version
var ErrCapacity = errors.New("data does not fit the selected type number and error correction level")

const finderSize = 7

// Matrix is an encoded QR symbol without its quiet zone
type Matrix struct {
	Version int
	Size    int
	bits    [][]bool
}

func recoveryLevel(l qrstyle.ErrorCorrectionLevel) qrcode.RecoveryLevel {
	switch l {
	case qrstyle.ErrorCorrectionL:
		return qrcode.Low
	case qrstyle.ErrorCorrectionM:
		return qrcode.Medium
	case qrstyle.ErrorCorrectionH:
		return qrcode.Highest
	default:
		return qrcode.High
	}
}

// Encode builds the module matrix for data. A zero TypeNumber lets the
// encoder pick the smallest version; otherwise the version is forced.
// The encoder chooses the most compact mode for the content, which is
// never larger than the validated Mode.
func Encode(data string, opts qrstyle.QrOptions) (*Matrix, error) {
	var (
		q   *qrcode.QRCode
		err error
	)
	level := recoveryLevel(opts.ErrorCorrectionLevel)
	if opts.TypeNumber > 0 {
		q, err = qrcode.NewWithForcedVersion(data, opts.TypeNumber, level)
	} else {
		q, err = qrcode.New(data, level)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapacity, err)
	}
	q.DisableBorder = true

	bits := q.Bitmap()
	return &Matrix{
		Version: q.VersionNumber,
		Size:    len(bits),
		bits:    bits,
	}, nil
}

// NewMatrix wraps a raw bitmap, rows first.
func NewMatrix(bits [][]bool) *Matrix {
	return &Matrix{Size: len(bits), bits: bits}
}

// Dark reports whether the module at row, col is set. Out of range is light.
func (m *Matrix) Dark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.Size || col >= m.Size {
		return false
	}
	return m.bits[row][col]
}

// InFinder reports whether row, col belongs to one of the three 7x7 finder patterns.
func (m *Matrix) InFinder(row, col int) bool {
	inTop := row < finderSize
	inBottom := row >= m.Size-finderSize
	inLeft := col < finderSize
	inRight := col >= m.Size-finderSize
	return (inTop && inLeft) || (inTop && inRight) || (inBottom && inLeft)
}

// finderOrigins returns the top-left module of each finder pattern.
func (m *Matrix) finderOrigins() [][2]int {
	return [][2]int{
		{0, 0},
		{0, m.Size - finderSize},
		{m.Size - finderSize, 0},
	}
}
