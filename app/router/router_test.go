package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierroma/rakis/app/types"
)

func TestDefaultRoute(t *testing.T) {
	tests := []struct {
		name string
		req  types.Request
		want types.Outcome
	}{
		{
			name: "Root",
			req:  types.Request{Method: types.Get, Target: "/"},
			want: types.NewOutcome(types.StatusOK),
		},
		{
			name: "Root with query is not root",
			req:  types.Request{Method: types.Get, Target: "/?x=1"},
			want: types.NewOutcome(types.StatusNotFound),
		},
		{
			name: "Echo",
			req:  types.Request{Method: types.Get, Target: "/echo/abc"},
			want: types.NewOutcome(types.StatusOK).WithText("abc"),
		},
		{
			name: "Echo keeps special characters verbatim",
			req:  types.Request{Method: types.Get, Target: "/echo/a%20b/c?d=e#f"},
			want: types.NewOutcome(types.StatusOK).WithText("a%20b/c?d=e#f"),
		},
		{
			name: "Echo with empty remainder",
			req:  types.Request{Method: types.Get, Target: "/echo/"},
			want: types.NewOutcome(types.StatusOK).WithText(""),
		},
		{
			name: "Echo without trailing slash",
			req:  types.Request{Method: types.Get, Target: "/echo"},
			want: types.NewOutcome(types.StatusNotFound),
		},
		{
			name: "User agent present",
			req: types.Request{
				Method:  types.Get,
				Target:  "/user-agent",
				Headers: map[string]string{"User-Agent": "test-agent"},
			},
			want: types.NewOutcome(types.StatusOK).WithText("test-agent"),
		},
		{
			name: "User agent missing",
			req:  types.Request{Method: types.Get, Target: "/user-agent", Headers: map[string]string{}},
			want: types.NewOutcome(types.StatusBadRequest),
		},
		{
			name: "User agent lookup is case sensitive",
			req: types.Request{
				Method:  types.Get,
				Target:  "/user-agent",
				Headers: map[string]string{"user-agent": "curl"},
			},
			want: types.NewOutcome(types.StatusBadRequest),
		},
		{
			name: "Unknown path",
			req:  types.Request{Method: types.Get, Target: "/nope"},
			want: types.NewOutcome(types.StatusNotFound),
		},
		{
			name: "Path without leading slash",
			req:  types.Request{Method: types.Get, Target: "echo/abc"},
			want: types.NewOutcome(types.StatusNotFound),
		},
		{
			name: "Non-GET on root",
			req:  types.Request{Method: types.Method("POST"), Target: "/"},
			want: types.NewOutcome(types.StatusNotImplemented),
		},
		{
			name: "Non-GET on unknown path",
			req:  types.Request{Method: types.Method("DELETE"), Target: "/nope"},
			want: types.NewOutcome(types.StatusNotImplemented),
		},
		{
			name: "Method is case sensitive",
			req:  types.Request{Method: types.Method("get"), Target: "/"},
			want: types.NewOutcome(types.StatusNotImplemented),
		},
	}

	r := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.req))
		})
	}
}

func TestRouteDoesNotMutateRequest(t *testing.T) {
	req := types.Request{Method: types.Get, Target: "/echo/x"}
	Default().Route(req)
	assert.Nil(t, req.Params)
}
