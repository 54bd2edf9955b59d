package router

import (
	"github.com/xavierroma/rakis/app/types"
)

// Router maps a parsed request to an outcome. Route never fails: anything it
// cannot serve becomes a 4xx/5xx outcome.
type Router interface {
	Register(method types.Method, path string, handler types.Handler) Router

	Route(req types.Request) types.Outcome
}

func New() Router {
	return newTreeRouter()
}

// Default returns a router with the root, echo and user-agent routes.
func Default() Router {
	return New().
		Register(types.Get, "/", Root).
		Register(types.Get, "/echo/*text", Echo).
		Register(types.Get, "/user-agent", UserAgent)
}

func Root(req types.Request) types.Outcome {
	return types.NewOutcome(types.StatusOK)
}

// Echo reflects the path remainder after "/echo/" without decoding it.
func Echo(req types.Request) types.Outcome {
	return types.NewOutcome(types.StatusOK).WithText(req.Params["text"])
}

func UserAgent(req types.Request) types.Outcome {
	ua, ok := req.Headers["User-Agent"]
	if !ok {
		return types.NewOutcome(types.StatusBadRequest)
	}
	return types.NewOutcome(types.StatusOK).WithText(ua)
}
