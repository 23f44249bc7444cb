// Package domain contains the core domain models and ordering logic for task scheduling.
package domain

import (
	"iter"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"
	"go.trai.ch/zerr"
)

// Graph is the dependency graph of one scheduling request.
// Nodes are addressed by their position in the input so that ties can fall back
// to input order. Edges point from a dependency to its dependent.
type Graph struct {
	tasks      []Task
	index      map[string]int
	inDegree   []int
	dependents [][]int
	requires   [][]int
	edges      int
	unresolved []UnresolvedDependency
}

// NewGraph builds the dependency graph for tasks.
// Dependencies naming a title that is not part of tasks are dropped and reported
// by Unresolved. Titles are expected to be unique; if they are not, dependencies
// resolve to the first task carrying the title.
func NewGraph(tasks []Task) *Graph {
	n := len(tasks)
	g := &Graph{
		tasks:      tasks,
		index:      make(map[string]int, n),
		inDegree:   make([]int, n),
		dependents: make([][]int, n),
		requires:   make([][]int, n),
	}

	for i, t := range tasks {
		if _, exists := g.index[t.Title]; !exists {
			g.index[t.Title] = i
		}
	}

	for i, t := range tasks {
		for _, dep := range t.Dependencies {
			from, ok := g.index[dep]
			if !ok {
				g.unresolved = append(g.unresolved, UnresolvedDependency{Task: t.Title, Dependency: dep})
				continue
			}
			g.dependents[from] = append(g.dependents[from], i)
			g.requires[i] = append(g.requires[i], from)
			g.inDegree[i]++
			g.edges++
		}
	}

	return g
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Edges returns the number of resolved dependency edges.
func (g *Graph) Edges() int {
	return g.edges
}

// Unresolved returns the dependency references that were dropped.
func (g *Graph) Unresolved() []UnresolvedDependency {
	return g.unresolved
}

// Order computes a topological order of the graph.
// Among the tasks ready at any point, the one with the earliest due date is taken
// first, then the one with the fewest estimated hours, then the one that appeared
// first in the input. If some tasks can never become ready the graph has a cycle
// and ErrCycleDetected is returned without a partial order.
func (g *Graph) Order() ([]string, error) {
	inDegree := make([]int, len(g.inDegree))
	copy(inDegree, g.inDegree)

	ready := binaryheap.NewWith(func(a, b interface{}) int {
		return g.compare(a.(int), b.(int))
	})
	for i, d := range inDegree {
		if d == 0 {
			ready.Push(i)
		}
	}

	order := make([]string, 0, len(g.tasks))
	for !ready.Empty() {
		v, _ := ready.Pop()
		current := v.(int)
		order = append(order, g.tasks[current].Title)

		for _, next := range g.dependents[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				ready.Push(next)
			}
		}
	}

	if len(order) < len(g.tasks) {
		return nil, g.cycleError(inDegree)
	}

	return order, nil
}

// Walk returns an iterator over the tasks in input order.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range g.tasks {
			if !yield(t) {
				return
			}
		}
	}
}

// compare orders two ready tasks by (due date, estimated hours, input position).
func (g *Graph) compare(a, b int) int {
	ta, tb := g.tasks[a], g.tasks[b]
	if c := ta.DueDate.Compare(tb.DueDate); c != 0 {
		return c
	}
	switch {
	case ta.EstimatedHours < tb.EstimatedHours:
		return -1
	case ta.EstimatedHours > tb.EstimatedHours:
		return 1
	}
	return a - b
}

// cycleError builds ErrCycleDetected with the unscheduled titles and one cycle path.
// Every task left with a positive in-degree has at least one unscheduled
// prerequisite, so walking prerequisites from any of them must revisit a task.
func (g *Graph) cycleError(inDegree []int) error {
	var unscheduled []string
	start := -1
	for i, d := range inDegree {
		if d > 0 {
			unscheduled = append(unscheduled, g.tasks[i].Title)
			if start < 0 {
				start = i
			}
		}
	}

	err := zerr.Wrap(ErrCycleDetected, "Circular dependency detected in tasks")
	err = zerr.With(err, "unscheduled", unscheduled)
	if path := g.cyclePath(start, inDegree); path != "" {
		err = zerr.With(err, "cycle", path)
	}
	return err
}

// cyclePath follows unscheduled prerequisites from start until a task repeats and
// renders the repeating segment as "A -> B -> A", where each arrow reads "depends on".
func (g *Graph) cyclePath(start int, inDegree []int) string {
	if start < 0 {
		return ""
	}

	seen := make(map[int]int)
	var path []int
	current := start
	for {
		if at, ok := seen[current]; ok {
			names := make([]string, 0, len(path)-at+1)
			for _, i := range path[at:] {
				names = append(names, g.tasks[i].Title)
			}
			names = append(names, g.tasks[current].Title)
			return strings.Join(names, " -> ")
		}
		seen[current] = len(path)
		path = append(path, current)

		next := -1
		for _, p := range g.requires[current] {
			if inDegree[p] > 0 {
				next = p
				break
			}
		}
		if next < 0 {
			return ""
		}
		current = next
	}
}
