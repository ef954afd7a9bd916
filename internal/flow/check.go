package flow

import (
	"fmt"
	"sort"

	"github.com/procmine/docflow/internal/domain"
)

// Check verifies the graph invariants: the edge set must be acyclic, and a
// subsequent document must not be created before its preceding document when
// both dates are known. Violations come back as warnings rather than errors
// because source data quality varies; callers decide whether to reject.
func Check(graph *Graph) []domain.Warning {
	var warnings []domain.Warning

	for _, edge := range graph.Edges {
		pre := graph.Document(edge.PrecedingDoc)
		sub := graph.Document(edge.SubsequentDoc)
		if pre == nil || sub == nil {
			warnings = append(warnings, domain.Warning{
				Resource: "flow",
				Message:  fmt.Sprintf("edge %s→%s references a document missing from the node set", edge.PrecedingDoc, edge.SubsequentDoc),
			})
			continue
		}
		if pre.CreatedAt != nil && sub.CreatedAt != nil && sub.CreatedAt.Before(*pre.CreatedAt) {
			warnings = append(warnings, domain.Warning{
				Resource: "flow",
				Message: fmt.Sprintf("edge %s→%s violates temporal order: subsequent created %s before preceding %s",
					edge.PrecedingDoc, edge.SubsequentDoc,
					sub.CreatedAt.Format("2006-01-02"), pre.CreatedAt.Format("2006-01-02")),
			})
		}
	}

	if members := findCycle(graph); len(members) > 0 {
		sort.Strings(members)
		warnings = append(warnings, domain.Warning{
			Resource: "flow",
			Message:  fmt.Sprintf("edge set is not acyclic, documents on cycles: %v", members),
		})
	}

	return warnings
}

// findCycle runs Kahn's algorithm over the edge set and returns the document
// numbers left with unresolved in-degree, i.e. the members of at least one
// cycle. Empty means the graph is a DAG.
func findCycle(graph *Graph) []string {
	indegree := map[string]int{}
	successors := map[string][]string{}
	for _, edge := range graph.Edges {
		successors[edge.PrecedingDoc] = append(successors[edge.PrecedingDoc], edge.SubsequentDoc)
		indegree[edge.SubsequentDoc]++
		if _, ok := indegree[edge.PrecedingDoc]; !ok {
			indegree[edge.PrecedingDoc] = 0
		}
	}

	var queue []string
	for node, degree := range indegree {
		if degree == 0 {
			queue = append(queue, node)
		}
	}

	resolved := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		resolved++
		for _, next := range successors[node] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if resolved == len(indegree) {
		return nil
	}
	var members []string
	for node, degree := range indegree {
		if degree > 0 {
			members = append(members, node)
		}
	}
	return members
}
