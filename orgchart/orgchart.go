/*
Package orgchart assembles the organizational tree from flat employee rows.

Employees reference their manager by id; Build links children under parents
and returns the roots (employees with no manager, or whose manager is not in
the set). A Builder wraps Build with singleflight so concurrent chart
requests share one assembly instead of each walking the employee table.
*/
package orgchart

import (
	"context"
	"sort"

	"golang.org/x/sync/singleflight"
)

// Member is one employee as the chart sees it.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	ManagerID  string `json:"-"`
}

// Node is a member plus their direct reports, ordered by name.
type Node struct {
	Member
	Reports []*Node `json:"reports,omitempty"`
}

// Build assembles the tree. Nodes whose ManagerID is empty or unknown become
// roots. Cycles cannot occur: a node is attached to a parent at most once
// and self-references are treated as roots.
func Build(members []Member) []*Node {
	nodes := make(map[string]*Node, len(members))
	for _, m := range members {
		nodes[m.ID] = &Node{Member: m}
	}

	var roots []*Node
	for _, m := range members {
		node := nodes[m.ID]
		parent, ok := nodes[m.ManagerID]
		if !ok || m.ManagerID == m.ID {
			roots = append(roots, node)
			continue
		}
		parent.Reports = append(parent.Reports, node)
	}

	var sortReports func(ns []*Node)
	sortReports = func(ns []*Node) {
		sort.Slice(ns, func(i, j int) bool { return ns[i].Name < ns[j].Name })
		for _, n := range ns {
			sortReports(n.Reports)
		}
	}
	sortReports(roots)
	return roots
}

// MemberSource yields the current flat employee list.
type MemberSource func(ctx context.Context) ([]Member, error)

// Builder shares in-flight chart assemblies across concurrent callers.
type Builder struct {
	source MemberSource
	group  singleflight.Group
}

func NewBuilder(source MemberSource) *Builder {
	return &Builder{source: source}
}

// Chart fetches members and builds the tree. Concurrent calls while a build
// is in flight receive the same result. The fetch runs detached from the
// caller's context: a shared flight must not fail every waiter just because
// the first caller went away.
func (b *Builder) Chart(ctx context.Context) ([]*Node, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := b.group.Do("orgchart", func() (any, error) {
		members, err := b.source(ctx)
		if err != nil {
			return nil, err
		}
		return Build(members), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*Node), nil
}
