package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/colorcount/colorcount/cerr"
)

// ReadEdgeList reads the plain-text edge-list format: the first line holds
// the vertex count, the second holds the edge count, and each following
// line is "u v" (whitespace-separated) naming one edge. Vertex ids need not
// be contiguous or start at 0; when the largest id is not n-1, the ids
// actually present are compacted by rank via CompactIDs before the CSC is
// built. Negative ids are rejected.
func ReadEdgeList(r io.Reader) (*CSC, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

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
	if err != nil || n < 0 {
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

	src := make([]int32, m)
	dst := make([]int32, m)
	maxID := int32(-1)
	for i := 0; i < m; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, cerr.New(cerr.MalformedInput, "line %d: expected edge %d of %d, got EOF", lineNo+1, i, m)
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, cerr.New(cerr.MalformedInput, "line %d: expected \"u v\", got %q", lineNo, line)
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, cerr.New(cerr.MalformedInput, "line %d: invalid source id %q", lineNo, fields[0])
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, cerr.New(cerr.MalformedInput, "line %d: invalid dest id %q", lineNo, fields[1])
		}
		if u < 0 || v < 0 {
			return nil, cerr.New(cerr.MalformedInput, "line %d: negative vertex id in %q", lineNo, line)
		}
		src[i], dst[i] = int32(u), int32(v)
		if src[i] > maxID {
			maxID = src[i]
		}
		if dst[i] > maxID {
			maxID = dst[i]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cerr.New(cerr.IoError, "scanning edge list: %w", err)
	}

	if int(maxID) != n-1 {
		var compacted int
		src, dst, compacted = CompactIDs(src, dst)
		n = compacted
	}

	return BuildCSC(n, src, dst)
}

// WriteEdgeList writes g back out in the plain-text edge-list format,
// emitting each undirected edge once (row <= col, so a self loop is written
// once as well).
func WriteEdgeList(w io.Writer, g *CSC) error {
	edges := make([][2]int32, 0, g.NNZ()/2)
	for c := 0; c < g.N; c++ {
		for _, r := range g.Column(c) {
			if int(r) <= c {
				edges = append(edges, [2]int32{r, int32(c)})
			}
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, g.N); err != nil {
		return cerr.New(cerr.IoError, "write vertex count: %w", err)
	}
	if _, err := fmt.Fprintln(bw, len(edges)); err != nil {
		return cerr.New(cerr.IoError, "write edge count: %w", err)
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e[0], e[1]); err != nil {
			return cerr.New(cerr.IoError, "write edge: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return cerr.New(cerr.IoError, "flush: %w", err)
	}
	return nil
}
