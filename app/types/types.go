package types

type Method string

// Get is the only method the router serves. Any other token is kept as-is.
const Get Method = "GET"

type Handler func(req Request) Outcome

type Request struct {
	Method  Method
	Target  string
	Headers map[string]string
	Params  map[string]string
}

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusBadRequest
	StatusNotImplemented
)

var statusLines = map[Status]string{
	StatusOK:             "200 OK",
	StatusNotFound:       "404 Not Found",
	StatusBadRequest:     "400 Bad Request",
	StatusNotImplemented: "501 Not Implemented",
}

var statusCodes = map[Status]int{
	StatusOK:             200,
	StatusNotFound:       404,
	StatusBadRequest:     400,
	StatusNotImplemented: 501,
}

// String returns the code and reason phrase, e.g. "404 Not Found".
func (s Status) String() string {
	return statusLines[s]
}

func (s Status) Code() int {
	return statusCodes[s]
}

type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentTextPlain
)

// Content is either empty or a text/plain body.
type Content struct {
	Kind ContentKind
	Body string
}

var Empty = Content{Kind: ContentEmpty}

func TextPlain(body string) Content {
	return Content{Kind: ContentTextPlain, Body: body}
}

type Outcome struct {
	Status  Status
	Content Content
}

func NewOutcome(s Status) Outcome {
	return Outcome{Status: s, Content: Empty}
}

func (o Outcome) WithText(body string) Outcome {
	o.Content = TextPlain(body)
	return o
}
