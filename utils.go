package roadgrowth

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return errors.Wrap(err, "failed to encode png")
	}
	return errors.Wrapf(os.WriteFile(fpath, buff.Bytes(), 0644), "failed to write %s", fpath)
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minint returns the lowest of two ints
func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
