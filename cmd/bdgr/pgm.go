package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// readPGM reads a binary PGM (P5) file and returns its pixel plane and
// dimensions. Only 8-bit images (maxval up to 255) are supported.
func readPGM(path string) (pix []byte, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, errors.WithStack(err)
	}
	defer f.Close()
	br := bufio.NewReader(f)

	magic, err := pnmToken(br)
	if err != nil {
		return nil, 0, 0, errors.Wrapf(err, "reading %q", path)
	}
	if magic != "P5" {
		return nil, 0, 0, errors.Errorf("%q: not a binary PGM file; magic %q", path, magic)
	}

	var maxval int
	for _, dst := range []*int{&width, &height, &maxval} {
		tok, err := pnmToken(br)
		if err != nil {
			return nil, 0, 0, errors.Wrapf(err, "reading %q", path)
		}
		if _, err := fmt.Sscan(tok, dst); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "%q: bad header token %q", path, tok)
		}
	}
	if width < 1 || height < 1 {
		return nil, 0, 0, errors.Errorf("%q: invalid dimensions %dx%d", path, width, height)
	}
	if maxval < 1 || maxval > 255 {
		return nil, 0, 0, errors.Errorf("%q: unsupported maxval %d", path, maxval)
	}

	pix = make([]byte, width*height)
	if _, err := io.ReadFull(br, pix); err != nil {
		return nil, 0, 0, errors.Wrapf(err, "reading %q pixel data", path)
	}
	return pix, width, height, nil
}

// writePGM writes a binary PGM (P5) image.
func writePGM(w io.Writer, pix []byte, width, height int) error {
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", width, height); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(pix); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// pnmToken returns the next whitespace-delimited header token, skipping
// '#' comments, and consumes the single whitespace byte that ends it.
func pnmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
