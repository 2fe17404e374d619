// Package tree aggregates per-file copyright metadata over the directory
// structure and emits the smallest set of DEP5 Files paragraphs that covers
// every file.
package tree

import (
	"sort"
	"strings"

	"github.com/teranos/dep5/atom"
	"github.com/teranos/dep5/bom"
	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/errors"
	"go.uber.org/zap"
)

// NodeID addresses a node in the tree's arena.
type NodeID int

// RootID is the synthetic root, named ".".
const RootID NodeID = 0

type node struct {
	segment  string
	metadata MetadataID
	hasMeta  bool
	isFile   bool
	children []NodeID
	bySeg    map[string]NodeID
}

// Tree is an arena of path segments. Nodes refer to their children by index;
// the metadata of every node is an identity in the tree's interning table.
type Tree struct {
	nodes    []node
	metadata *atom.Table[Metadata, MetadataID]
	files    int
	log      *zap.SugaredLogger
}

// New returns a tree holding only the root. A nil log discards output.
func New(log *zap.SugaredLogger) *Tree {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Tree{
		nodes:    []node{{segment: "."}},
		metadata: atom.New[Metadata, MetadataID](),
		log:      log,
	}
}

// Build inserts every record in order.
func Build(records []bom.FileRecord, log *zap.SugaredLogger) (*Tree, error) {
	t := New(log)
	for _, rec := range records {
		if _, err := t.InsertRecord(rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// InsertRecord cleans the record's copyright text, interns it with the
// record's licenses and attaches the result to the record's path.
func (t *Tree) InsertRecord(rec bom.FileRecord) (MetadataID, error) {
	m := Metadata{
		CopyrightText: copyright.Cleanup(rec.CopyrightText),
		License:       NewLicenseSet(rec.Licenses()),
	}
	return t.Insert(rec.Path, m)
}

// Insert attaches m to the node for path, creating intermediate nodes. Empty
// and "." segments are ignored.
func (t *Tree) Insert(path string, m Metadata) (MetadataID, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return 0, errors.NewInvalidInputError("empty file path %q", path)
	}
	current := RootID
	for i, seg := range segments {
		if current != RootID && t.nodes[current].isFile {
			return 0, errors.NewInvalidInputError("%q is under %q, which is a file", path, strings.Join(segments[:i], "/"))
		}
		current = t.findOrCreateChild(current, seg)
	}
	if len(t.nodes[current].children) > 0 {
		return 0, errors.NewInvalidInputError("%q is a directory and cannot carry file metadata", path)
	}
	id := t.metadata.GetOrCreate(m)
	n := &t.nodes[current]
	n.isFile = true
	n.metadata = id
	n.hasMeta = true
	t.files++
	return id, nil
}

func splitPath(path string) []string {
	path = bom.CleanPath(path)
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." {
			continue
		}
		out = append(out, seg)
	}
	return out
}

func (t *Tree) findOrCreateChild(parent NodeID, segment string) NodeID {
	if id, ok := t.nodes[parent].bySeg[segment]; ok {
		return id
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{segment: segment})
	p := &t.nodes[parent]
	if p.bySeg == nil {
		p.bySeg = make(map[string]NodeID)
	}
	p.bySeg[segment] = id
	p.children = append(p.children, id)
	return id
}

// Lookup returns the metadata attached to path, directly or by promotion.
func (t *Tree) Lookup(path string) (MetadataID, bool) {
	current := RootID
	for _, seg := range splitPath(path) {
		id, ok := t.nodes[current].bySeg[seg]
		if !ok {
			return 0, false
		}
		current = id
	}
	n := t.nodes[current]
	return n.metadata, n.hasMeta && current != RootID
}

// MetadataTable returns the interning table backing the tree.
func (t *Tree) MetadataTable() *atom.Table[Metadata, MetadataID] {
	return t.metadata
}

// Stats summarizes the tree's size.
type Stats struct {
	Files    int
	Nodes    int
	Metadata int
}

func (t *Tree) Stats() Stats {
	return Stats{Files: t.files, Nodes: len(t.nodes), Metadata: t.metadata.Len()}
}

// PropagateMetadata promotes metadata up the tree in one post-order pass: a
// node whose children all carry the same identity takes that identity too.
// The root is never promoted.
func (t *Tree) PropagateMetadata() {
	t.propagate(RootID)
}

func (t *Tree) propagate(id NodeID) {
	children := t.nodes[id].children
	if len(children) == 0 {
		return
	}
	for _, c := range children {
		t.propagate(c)
	}
	if id == RootID {
		return
	}
	first := t.nodes[children[0]]
	if !first.hasMeta {
		return
	}
	for _, c := range children[1:] {
		if n := t.nodes[c]; !n.hasMeta || n.metadata != first.metadata {
			return
		}
	}
	n := &t.nodes[id]
	n.metadata = first.metadata
	n.hasMeta = true
}

// Entry is one covering node: a file or a fully covered directory.
type Entry struct {
	Pattern  string
	Metadata MetadataID
}

// CoveringEntries walks the tree top-down in segment order and returns every
// node carrying metadata, without descending below it.
func (t *Tree) CoveringEntries() []Entry {
	var out []Entry
	t.walk(RootID, "", &out)
	return out
}

func (t *Tree) walk(id NodeID, path string, out *[]Entry) {
	n := t.nodes[id]
	if id != RootID && n.hasMeta {
		pattern := path
		if len(n.children) > 0 {
			pattern += "/*"
		}
		*out = append(*out, Entry{Pattern: pattern, Metadata: n.metadata})
		return
	}
	for _, c := range t.sortedChildren(id) {
		childPath := escapeSegment(t.nodes[c].segment)
		if path != "" {
			childPath = path + "/" + childPath
		}
		t.walk(c, childPath, out)
	}
}

func (t *Tree) sortedChildren(id NodeID) []NodeID {
	children := append([]NodeID(nil), t.nodes[id].children...)
	sort.Slice(children, func(i, j int) bool {
		return t.nodes[children[i]].segment < t.nodes[children[j]].segment
	})
	return children
}

var segmentEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// escapeSegment protects DEP5 wildcard characters that occur in file names.
func escapeSegment(s string) string {
	return segmentEscaper.Replace(s)
}
