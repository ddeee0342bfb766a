package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// readPasswordNoEcho reads one line from stdin with terminal echo turned
// off. Piped input is read as is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	if isTerminal(stdin) {
		restore, err := disableEcho(stdin)
		if err != nil {
			return nil, err
		}
		defer restore()
	}
	return readLine(stdin)
}

// readLine reads byte by byte so a second prompt on the same input still
// sees the next line.
func readLine(input io.Reader) ([]byte, error) {
	var line []byte
	next := make([]byte, 1)
	for {
		n, err := input.Read(next)
		if n == 1 {
			if next[0] == '\n' {
				break
			}
			line = append(line, next[0])
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return bytes.TrimRight(line, "\r"), nil
}

func isTerminal(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
