package server

import (
	"bytes"
	"io"
	"strconv"

	"github.com/xavierroma/rakis/app/types"
)

const crlf = "\r\n"

// Serializer renders outcomes as HTTP/1.1 responses. The zero value keeps the
// historical framing, where one extra CRLF follows a body. StrictFraming
// drops that CRLF so Content-Length covers everything after the headers.
type Serializer struct {
	StrictFraming bool
}

func (s Serializer) Serialize(o types.Outcome) []byte {
	var b bytes.Buffer

	b.WriteString("HTTP/1.1 ")
	b.WriteString(o.Status.String())
	b.WriteString(crlf)

	if o.Content.Kind == types.ContentTextPlain {
		b.WriteString("Content-Length: ")
		b.WriteString(strconv.Itoa(len(o.Content.Body)))
		b.WriteString(crlf)
		b.WriteString("Content-Type: text/plain")
		b.WriteString(crlf)
		b.WriteString(crlf)
		b.WriteString(o.Content.Body)
		if s.StrictFraming {
			return b.Bytes()
		}
	}

	b.WriteString(crlf)
	return b.Bytes()
}

// Write serializes o and hands it to w in a single call.
func (s Serializer) Write(w io.Writer, o types.Outcome) (int, error) {
	return w.Write(s.Serialize(o))
}
