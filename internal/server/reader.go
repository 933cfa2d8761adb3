package server

import (
	"bufio"
	"errors"
	"io"
)

var errLineTooLong = errors.New("line too long")

// lineReader читает строки до '\n', собирая их из нескольких
// заполнений буфера. Строки длиннее max пропускаются до '\n'.
type lineReader struct {
	r   *bufio.Reader
	max int
	buf []byte
}

func newLineReader(rd io.Reader, bufSize, maxLine int) *lineReader {
	return &lineReader{
		r:   bufio.NewReaderSize(rd, bufSize),
		max: maxLine,
	}
}

// ReadLine возвращает строку без \r\n или \n.
// Последняя строка без '\n' перед EOF тоже считается запросом.
func (lr *lineReader) ReadLine() (string, error) {
	lr.buf = lr.buf[:0]
	tooLong := false

	for {
		chunk, err := lr.r.ReadSlice('\n')

		if !tooLong {
			lr.buf = append(lr.buf, chunk...)
			// max байт данных + "\r\n"
			if len(lr.buf) > lr.max+2 {
				tooLong = true
				lr.buf = lr.buf[:0]
			}
		}

		switch {
		case err == nil:
			if tooLong {
				return "", errLineTooLong
			}
			return lr.line()
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && !tooLong && len(lr.buf) > 0:
			return lr.line()
		default:
			return "", err
		}
	}
}

func (lr *lineReader) line() (string, error) {
	line := trimEOL(lr.buf)
	if len(line) > lr.max {
		return "", errLineTooLong
	}
	return string(line), nil
}

// trimEOL убирает \r\n или \n.
func trimEOL(b []byte) []byte {
	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		n--
	}
	if n > 0 && b[n-1] == '\r' {
		n--
	}
	return b[:n]
}
