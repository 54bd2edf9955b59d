package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierroma/rakis/app/types"
)

// ErrMalformedRequest is returned by Parse for any buffer that cannot be read
// as a request line followed by well-formed header lines.
var ErrMalformedRequest = errors.New("malformed request")

// Parse reads the request line and headers out of buf. The method token is
// kept verbatim, the protocol version is ignored and anything after the blank
// line ending the headers is never looked at. A single header line without a
// ':' fails the whole request.
func Parse(buf []byte) (types.Request, error) {
	result := types.Request{
		Headers: make(map[string]string),
	}
	reader := bufio.NewReader(bytes.NewReader(buf))

	requestLine, ok := readLine(reader)
	if !ok {
		return types.Request{}, fmt.Errorf("%w: empty request", ErrMalformedRequest)
	}

	requestLineParts := strings.Fields(requestLine)
	switch len(requestLineParts) {
	case 0:
		return types.Request{}, fmt.Errorf("%w: missing method", ErrMalformedRequest)
	case 1:
		return types.Request{}, fmt.Errorf("%w: missing path in %q", ErrMalformedRequest, requestLine)
	}
	result.Method = types.Method(requestLineParts[0])
	result.Target = requestLineParts[1]

	for {
		headerLine, ok := readLine(reader)
		if !ok || headerLine == "" {
			break
		}

		key, value, found := strings.Cut(headerLine, ":")
		if !found {
			return types.Request{}, fmt.Errorf("%w: header line without ':': %q", ErrMalformedRequest, headerLine)
		}

		result.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return result, nil
}

// readLine returns the next line without its "\n" or "\r\n" terminator. The
// last line of buf may be unterminated.
func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	if strings.HasSuffix(line, "\n") {
		line = strings.TrimSuffix(line[:len(line)-1], "\r")
	}
	return line, true
}
