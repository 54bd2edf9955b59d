package router

import (
	"github.com/xavierroma/rakis/app/segmenttree"
	"github.com/xavierroma/rakis/app/types"
)

type treeRouter struct {
	tree *segmenttree.SegmentTree
}

func newTreeRouter() *treeRouter {
	return &treeRouter{
		tree: segmenttree.NewSegmentTree(),
	}
}

func (r *treeRouter) Register(method types.Method, path string, handler types.Handler) Router {
	r.tree.Insert(method, path, handler)
	return r
}

func (r *treeRouter) Route(req types.Request) types.Outcome {
	if req.Method != types.Get {
		return types.NewOutcome(types.StatusNotImplemented)
	}

	handler, params, ok := r.tree.Search(req.Method, req.Target)
	if !ok {
		return types.NewOutcome(types.StatusNotFound)
	}

	req.Params = params
	return handler(req)
}
