package monitor

import (
	"strings"

	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// Ancestry is the read-only slice of the process table the resolver needs.
// sysproc.Table satisfies it; tests inject a fake graph.
type Ancestry interface {
	Identity(pid int32) (sysproc.Identity, error)
}

// TraceResult is the outcome of one controller-tree resolution. Found=false
// is a normal outcome, not an error; callers fall back to the immediate
// parent.
type TraceResult struct {
	RootPID  int32
	RootName string
	Found    bool
}

// Resolver walks a process's ancestor chain looking for the highest
// "controller" (a language-runtime executable capable of owning application
// logic), skipping over transparent "wrapper" processes such as shells and
// console hosts. Killing only a leaf often leaves a wrapper alive to respawn
// it; the root controller is the termination target that prevents that.
type Resolver struct {
	controllers map[string]bool
	wrappers    map[string]bool
	maxDepth    int
}

// NewResolver builds a resolver from the configured controller and wrapper
// name sets. maxDepth bounds the ascent; values below 1 fall back to 32.
func NewResolver(controllers, wrappers []string, maxDepth int) *Resolver {
	if maxDepth < 1 {
		maxDepth = 32
	}
	return &Resolver{
		controllers: lowerSet(controllers),
		wrappers:    lowerSet(wrappers),
		maxDepth:    maxDepth,
	}
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// Trace ascends from pid's immediate parent, recording the highest ancestor
// whose name is in the controller set. The ascent continues only through
// wrapper or controller processes and stops, without error, at the first
// unrelated ancestor, at an unreadable one, at the end of the chain, or on
// revisiting a pid (malformed ancestry data can contain cycles).
func (r *Resolver) Trace(src Ancestry, pid int32) TraceResult {
	var res TraceResult

	id, err := src.Identity(pid)
	if err != nil {
		return res
	}

	visited := map[int32]bool{pid: true}
	cur := id.PPID

	for depth := 0; depth < r.maxDepth && cur > 0; depth++ {
		if visited[cur] {
			break
		}
		visited[cur] = true

		anc, err := src.Identity(cur)
		if err != nil {
			break
		}
		name := strings.ToLower(anc.Name)

		if r.controllers[name] {
			// Prefer the highest match: overwrite and keep climbing.
			res.RootPID = cur
			res.RootName = anc.Name
			res.Found = true
		} else if !r.wrappers[name] {
			// An unrelated process owns this ancestor; stop here.
			break
		}

		cur = anc.PPID
	}

	return res
}
