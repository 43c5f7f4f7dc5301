package pattern

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gameoflife/src/universe"
)

//FormatOf picks the format from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rle":
		return RLE, nil
	case ".cells":
		return PlainText, nil
	}
	return "", fmt.Errorf("%w: can't tell the type of %q from its extension", ErrUnsupportedFormat, path)
}

//Decode parses r in the given format
func Decode(r io.Reader, f Format) (*Pattern, error) {
	switch f {
	case RLE:
		return DecodeRLE(r)
	case PlainText:
		return DecodePlainText(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

//Load opens and decodes the pattern file, choosing the decoder by extension
func Load(path string) (*Pattern, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern: %w", err)
	}
	defer file.Close()

	p, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

//Save writes the cells to path, only Plain Text can be written
func Save(path string, metadata []string, cells []universe.Coordinate) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	if f != PlainText {
		return fmt.Errorf("%w: saving %s files", ErrUnsupportedFormat, f)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pattern: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close pattern: %w", cerr)
		}
	}()
	return EncodePlainText(file, metadata, cells)
}
