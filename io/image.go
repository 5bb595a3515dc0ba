package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseImage parses a memory image of comma separated decimal integers.
// Surrounding whitespace, such as a trailing newline, is ignored.
func ParseImage(r io.Reader) (image []int64, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		err = ErrImageEmpty
		return
	}

	tokens := strings.Split(text, ",")
	image = make([]int64, len(tokens))
	for n, token := range tokens {
		image[n], err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			image = nil
			err = &ErrParse{Index: n, Token: token}
			return
		}
	}

	return
}

// FormatImage writes a memory image as comma separated decimal integers,
// followed by a newline.
func FormatImage(w io.Writer, image []int64) (err error) {
	bw := bufio.NewWriter(w)
	for n, value := range image {
		if n > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(strconv.FormatInt(value, 10))
	}
	bw.WriteByte('\n')

	return bw.Flush()
}
