package graph

import (
	"encoding/binary"
	"io"

	"github.com/colorcount/colorcount/cerr"
)

// binaryMagic and binaryVersion tag the on-disk binary graph format so a
// reader can reject a file it does not understand instead of silently
// misinterpreting its bytes. The format otherwise matches field-for-field
// what the count-the-subgraphs tool itself writes: edge count, vertex
// count, per-vertex degree list, CSC column pointers, row indices, values.
var binaryMagic = [4]byte{'C', 'C', 'G', '1'}

const binaryVersion uint32 = 1

// WriteBinary writes g to w in the versioned binary graph format.
func WriteBinary(w io.Writer, g *CSC) error {
	if err := binary.Write(w, binary.LittleEndian, binaryMagic); err != nil {
		return cerr.New(cerr.IoError, "write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, binaryVersion); err != nil {
		return cerr.New(cerr.IoError, "write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(g.NumEdge)); err != nil {
		return cerr.New(cerr.IoError, "write num_edges: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(g.N)); err != nil {
		return cerr.New(cerr.IoError, "write num_vertices: %w", err)
	}

	deg := make([]int32, g.N)
	for v := 0; v < g.N; v++ {
		deg[v] = int32(g.Degree(v))
	}
	if err := binary.Write(w, binary.LittleEndian, deg); err != nil {
		return cerr.New(cerr.IoError, "write degree list: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, g.ColPtr); err != nil {
		return cerr.New(cerr.IoError, "write col_ptr: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, g.RowIdx); err != nil {
		return cerr.New(cerr.IoError, "write row_idx: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, g.Vals); err != nil {
		return cerr.New(cerr.IoError, "write vals: %w", err)
	}
	return nil
}

// ReadBinary reads a CSC graph previously written by WriteBinary.
func ReadBinary(r io.Reader) (*CSC, error) {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, cerr.New(cerr.IoError, "read magic: %w", err)
	}
	if magic != binaryMagic {
		return nil, cerr.New(cerr.MalformedInput, "bad magic %q, want %q", magic, binaryMagic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, cerr.New(cerr.IoError, "read version: %w", err)
	}
	if version != binaryVersion {
		return nil, cerr.New(cerr.MalformedInput, "unsupported binary version %d", version)
	}

	var numEdges, numVerts int32
	if err := binary.Read(r, binary.LittleEndian, &numEdges); err != nil {
		return nil, cerr.New(cerr.IoError, "read num_edges: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &numVerts); err != nil {
		return nil, cerr.New(cerr.IoError, "read num_vertices: %w", err)
	}
	if numVerts < 0 {
		return nil, cerr.New(cerr.MalformedInput, "negative num_vertices %d", numVerts)
	}

	deg := make([]int32, numVerts)
	if err := binary.Read(r, binary.LittleEndian, deg); err != nil {
		return nil, cerr.New(cerr.IoError, "read degree list: %w", err)
	}

	colPtr := make([]int32, numVerts+1)
	if err := binary.Read(r, binary.LittleEndian, colPtr); err != nil {
		return nil, cerr.New(cerr.IoError, "read col_ptr: %w", err)
	}

	nnz := colPtr[numVerts]
	if nnz < 0 {
		return nil, cerr.New(cerr.MalformedInput, "negative nnz %d", nnz)
	}

	rowIdx := make([]int32, nnz)
	if err := binary.Read(r, binary.LittleEndian, rowIdx); err != nil {
		return nil, cerr.New(cerr.IoError, "read row_idx: %w", err)
	}

	vals := make([]float32, nnz)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, cerr.New(cerr.IoError, "read vals: %w", err)
	}

	return &CSC{
		N:       int(numVerts),
		ColPtr:  colPtr,
		RowIdx:  rowIdx,
		Vals:    vals,
		NumEdge: int(numEdges),
	}, nil
}
