// Package template decomposes a tree pattern into the ordered subtemplate
// chain the counting engine's DP recurrence runs over, and counts tree
// automorphisms for the final normalization step.
package template

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/colorcount/colorcount/cerr"
)

// Tree is a small rooted-free tree over vertices [0, N), stored as an
// adjacency list. Templates are limited to tens of vertices, so no CSC
// representation is warranted.
type Tree struct {
	N   int
	Adj [][]int
}

// ReadTree parses the same text format as an edge list (line 1 = vertex
// count, line 2 = edge count, then that many "u v" lines) and validates
// that the result is a tree: connected, with exactly N-1 edges.
func ReadTree(r io.Reader) (*Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return scanner.Text(), true
	}

	nLine, ok := nextLine()
	if !ok {
		return nil, cerr.New(cerr.MalformedInput, "line %d: missing vertex count", lineNo+1)
	}
	n, err := strconv.Atoi(strings.TrimSpace(nLine))
	if err != nil || n <= 0 {
		return nil, cerr.New(cerr.MalformedInput, "line %d: invalid vertex count %q", lineNo, nLine)
	}

	mLine, ok := nextLine()
	if !ok {
		return nil, cerr.New(cerr.MalformedInput, "line %d: missing edge count", lineNo+1)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mLine))
	if err != nil || m < 0 {
		return nil, cerr.New(cerr.MalformedInput, "line %d: invalid edge count %q", lineNo, mLine)
	}
	if m != n-1 {
		return nil, cerr.New(cerr.MalformedInput, "template is not a tree: n=%d, m=%d, want m=n-1", n, m)
	}

	adj := make([][]int, n)
	for i := 0; i < m; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, cerr.New(cerr.MalformedInput, "line %d: expected edge %d of %d, got EOF", lineNo+1, i, m)
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, cerr.New(cerr.MalformedInput, "line %d: expected \"u v\", got %q", lineNo, line)
		}
		u, err1 := strconv.Atoi(fields[0])
		v, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil || u < 0 || v < 0 || u >= n || v >= n {
			return nil, cerr.New(cerr.MalformedInput, "line %d: invalid edge %q", lineNo, line)
		}
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	if err := scanner.Err(); err != nil {
		return nil, cerr.New(cerr.IoError, "scanning template: %w", err)
	}

	t := &Tree{N: n, Adj: adj}
	if !t.isConnected() {
		return nil, cerr.New(cerr.MalformedInput, "template is not a tree: not connected")
	}
	return t, nil
}

func (t *Tree) isConnected() bool {
	if t.N == 0 {
		return true
	}
	seen := make([]bool, t.N)
	stack := []int{0}
	seen[0] = true
	count := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range t.Adj[v] {
			if !seen[u] {
				seen[u] = true
				count++
				stack = append(stack, u)
			}
		}
	}
	return count == t.N
}
