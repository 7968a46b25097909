// Package wire is the UHDM binary serializer of §4.2 / §6.1: Save walks an
// ir.Serializer's arena and writes every node's location, scalar fields,
// and edges; Restore rebuilds a fresh arena from that stream, byte for
// byte re-establishing the node graph including own/ref edge distinctions
// and registered top handles. Grounded on the teacher's
// internal/snapshot.Stream save/restore pair (same two-pass allocate-then-
// fill shape, same all-or-nothing failure discipline) and built directly
// on internal/uhdmio's varint/ref primitives.
package wire

import (
	"fmt"
	"io"

	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

const (
	magic         = "UHDM"
	formatVersion = 1
)

// kindIndex resolves a NodeID to the (kindTag, index-within-kind) pair
// Writer.WriteRef/Reader.ReadRef exchange.
type kindIndex struct {
	kindTag uint16
	index   uint32
}

// Save writes every reachable-by-enumeration node in s (i.e. every node
// ir.AllKinds()/ByKind can see, not just nodes reachable from a handle) to
// w in the §4.2.2 format.
func Save(s *ir.Serializer, w io.Writer) error {
	bw := uhdmio.NewWriter()
	bw.WriteBytesRaw([]byte(magic))
	bw.WriteU16(formatVersion)

	// Symbol table.
	symbols := s.Symbols().All()
	bw.WriteUvarint(uint64(len(symbols)))
	for _, str := range symbols {
		bw.WriteString(str)
	}

	// Kind-count table, and the per-kind node lists we'll walk twice more
	// below (once to build the global ref index, once to emit records).
	type kindNodes struct {
		kind  ir.Kind
		nodes []ir.Node
	}
	var present []kindNodes
	for _, k := range ir.AllKinds() {
		nodes := s.ByKind(k)
		if len(nodes) == 0 {
			continue
		}
		present = append(present, kindNodes{k, nodes})
	}
	bw.WriteUvarint(uint64(len(present)))
	for _, kn := range present {
		bw.WriteU16(uint16(kn.kind))
		bw.WriteUvarint(uint64(len(kn.nodes)))
	}

	// Global NodeID -> (kindTag, index) index, so any ref field can be
	// resolved regardless of write order.
	total := 0
	for _, kn := range present {
		total += len(kn.nodes)
	}
	refOf := make(map[ir.NodeID]kindIndex, total)
	for _, kn := range present {
		for i, n := range kn.nodes {
			refOf[n.ID()] = kindIndex{uint16(kn.kind), uint32(i)}
		}
	}
	writeRef := func(id ir.NodeID) {
		if id == 0 {
			bw.WriteRef(uhdmio.NullRef, 0)
			return
		}
		ref, ok := refOf[id]
		if !ok {
			// A dangling id (e.g. an unelaborated ref never bound) is
			// written as null rather than failing the whole save.
			bw.WriteRef(uhdmio.NullRef, 0)
			return
		}
		bw.WriteRef(ref.kindTag, ref.index)
	}

	// Per-node records, kind-by-kind in the same order as the count table.
	for _, kn := range present {
		for _, n := range kn.nodes {
			bw.WriteUvarint(uint64(n.ID()))

			loc := n.Loc()
			bw.WriteUvarint(uint64(loc.File))
			bw.WriteUvarint(uint64(loc.StartLine))
			bw.WriteUvarint(uint64(loc.StartColumn))
			bw.WriteUvarint(uint64(loc.EndLine))
			bw.WriteUvarint(uint64(loc.EndColumn))

			if grower, ok := n.(ir.EdgeGrower); ok {
				lens := grower.GroupLens()
				bw.WriteUvarint(uint64(len(lens)))
				for _, l := range lens {
					bw.WriteUvarint(uint64(l))
				}
			} else {
				bw.WriteUvarint(0)
			}

			if err := writeScalars(bw, n); err != nil {
				return err
			}

			walker, ok := n.(ir.EdgeWalker)
			if !ok {
				bw.WriteUvarint(0)
				continue
			}
			var ids []ir.NodeID
			walker.WalkEdges(func(_ ir.EdgeKind, id *ir.NodeID) {
				ids = append(ids, *id)
			})
			bw.WriteUvarint(uint64(len(ids)))
			for _, id := range ids {
				writeRef(id)
			}
		}
	}

	// Handle roster.
	handles := s.TopHandles()
	bw.WriteUvarint(uint64(len(handles)))
	for _, h := range handles {
		n := s.Resolve(h)
		if n == nil {
			bw.WriteRef(uhdmio.NullRef, 0)
			continue
		}
		writeRef(n.ID())
	}

	_, err := w.Write(bw.Bytes())
	return err
}

// Restore rebuilds an ir.Serializer from data written by Save. It is
// all-or-nothing: on any error it returns a fresh empty serializer and a
// nil handle list alongside the error, never a partially filled one.
func Restore(r io.Reader) (*ir.Serializer, []ir.Handle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ir.NewSerializer(), nil, err
	}
	br := uhdmio.NewReader(data)

	s, handles, err := restore(br)
	if err != nil {
		return ir.NewSerializer(), nil, err
	}
	return s, handles, nil
}

func restore(br *uhdmio.Reader) (*ir.Serializer, []ir.Handle, error) {
	hdr, err := br.ReadBytesRaw(len(magic))
	if err != nil {
		return nil, nil, fmt.Errorf("wire: reading magic: %w", err)
	}
	if string(hdr) != magic {
		return nil, nil, fmt.Errorf("wire: bad magic %q", hdr)
	}
	version, err := br.ReadU16()
	if err != nil {
		return nil, nil, fmt.Errorf("wire: reading version: %w", err)
	}
	if version != formatVersion {
		return nil, nil, fmt.Errorf("wire: unsupported format version %d", version)
	}

	s := ir.NewSerializer()

	numSymbols, err := br.ReadUvarint()
	if err != nil {
		return nil, nil, fmt.Errorf("wire: reading symbol count: %w", err)
	}
	symbols := make([]string, numSymbols)
	for i := range symbols {
		symbols[i], err = br.ReadString()
		if err != nil {
			return nil, nil, fmt.Errorf("wire: reading symbol %d: %w", i, err)
		}
	}
	s.Symbols().Reset(symbols)

	numKinds, err := br.ReadUvarint()
	if err != nil {
		return nil, nil, fmt.Errorf("wire: reading kind count: %w", err)
	}
	type kindCount struct {
		kind  ir.Kind
		count uint64
	}
	order := make([]kindCount, numKinds)
	for i := range order {
		tag, err := br.ReadU16()
		if err != nil {
			return nil, nil, fmt.Errorf("wire: reading kind tag %d: %w", i, err)
		}
		count, err := br.ReadUvarint()
		if err != nil {
			return nil, nil, fmt.Errorf("wire: reading kind count %d: %w", i, err)
		}
		order[i] = kindCount{ir.Kind(tag), count}
	}

	// First pass: allocate every node up front, per kind, in save order —
	// after this, s.ByKind(k)[i] is exactly the node Save indexed as
	// (k, i).
	for _, kc := range order {
		for i := uint64(0); i < kc.count; i++ {
			s.NewByKind(kc.kind)
		}
	}
	resolveRef := func(tag uint16, index uint32) ir.NodeID {
		if tag == uhdmio.NullRef {
			return 0
		}
		nodes := s.ByKind(ir.Kind(tag))
		if int(index) >= len(nodes) {
			return 0
		}
		return nodes[index].ID()
	}

	// Second pass: fill in location, scalars, and edges.
	for _, kc := range order {
		nodes := s.ByKind(kc.kind)
		for i := uint64(0); i < kc.count; i++ {
			n := nodes[i]

			if _, err := br.ReadUvarint(); err != nil { // saved id, informational
				return nil, nil, fmt.Errorf("wire: reading id for %s[%d]: %w", kc.kind, i, err)
			}

			var loc ir.Location
			fileSym, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			startLine, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			startCol, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			endLine, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			endCol, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			loc = ir.Location{
				File:        ir.SymbolID(fileSym),
				StartLine:   uint32(startLine),
				StartColumn: uint16(startCol),
				EndLine:     uint32(endLine),
				EndColumn:   uint16(endCol),
			}
			n.SetLoc(loc)

			groupCount, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			if groupCount > 0 {
				lens := make([]int, groupCount)
				for j := range lens {
					l, err := br.ReadUvarint()
					if err != nil {
						return nil, nil, err
					}
					lens[j] = int(l)
				}
				grower, ok := n.(ir.EdgeGrower)
				if !ok {
					return nil, nil, fmt.Errorf("wire: %s[%d] has edge groups but no EdgeGrower", kc.kind, i)
				}
				grower.GrowEdges(lens)
			}

			if err := readScalars(br, n); err != nil {
				return nil, nil, fmt.Errorf("wire: reading scalars for %s[%d]: %w", kc.kind, i, err)
			}

			edgeCount, err := br.ReadUvarint()
			if err != nil {
				return nil, nil, err
			}
			resolved := make([]ir.NodeID, edgeCount)
			for j := range resolved {
				tag, index, err := br.ReadRef()
				if err != nil {
					return nil, nil, err
				}
				resolved[j] = resolveRef(tag, index)
			}
			if walker, ok := n.(ir.EdgeWalker); ok {
				idx := 0
				walker.WalkEdges(func(kind ir.EdgeKind, ptr *ir.NodeID) {
					if idx >= len(resolved) {
						return
					}
					id := resolved[idx]
					*ptr = id
					if kind == ir.EdgeOwn && id != 0 {
						if child := s.Get(id); child != nil {
							child.SetParent(n)
						}
					}
					idx++
				})
				if idx != len(resolved) {
					return nil, nil, fmt.Errorf("wire: %s[%d] edge count mismatch: stream had %d, WalkEdges visited %d", kc.kind, i, len(resolved), idx)
				}
			} else if edgeCount != 0 {
				return nil, nil, fmt.Errorf("wire: %s[%d] has %d edges but no EdgeWalker", kc.kind, i, edgeCount)
			}
		}
	}

	numHandles, err := br.ReadUvarint()
	if err != nil {
		return nil, nil, fmt.Errorf("wire: reading handle count: %w", err)
	}
	handles := make([]ir.Handle, numHandles)
	for i := range handles {
		tag, index, err := br.ReadRef()
		if err != nil {
			return nil, nil, fmt.Errorf("wire: reading handle %d: %w", i, err)
		}
		id := resolveRef(tag, index)
		if id == 0 {
			handles[i] = ir.Handle{}
			continue
		}
		n := s.Get(id)
		handles[i] = s.MakeHandle(n)
	}

	return s, handles, nil
}
