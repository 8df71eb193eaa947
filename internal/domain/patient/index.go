package patient

// Index is an ordered store of patients keyed by ID, backed by an unbalanced
// binary search tree. Nodes live in an arena and address each other by slice
// index rather than pointer, so the successor splice in Delete never leaves a
// dangling reference. The tree does not rebalance; height depends on
// insertion order, which is acceptable at single-facility dataset sizes.
//
// Index does not check for duplicate IDs. Callers (the records facade)
// must search before inserting; inserting an existing ID is a programming
// error, not a recoverable condition.
type Index struct {
	nodes []node
	root  int
	free  []int
	size  int
}

type node struct {
	patient     *Patient
	left, right int
}

const nilNode = -1

func NewIndex() *Index {
	return &Index{root: nilNode}
}

func (ix *Index) alloc(p *Patient) int {
	if n := len(ix.free); n > 0 {
		i := ix.free[n-1]
		ix.free = ix.free[:n-1]
		ix.nodes[i] = node{patient: p, left: nilNode, right: nilNode}
		return i
	}
	ix.nodes = append(ix.nodes, node{patient: p, left: nilNode, right: nilNode})
	return len(ix.nodes) - 1
}

// Insert places p in the tree by ID. A duplicate ID is silently ignored at
// the placement step; uniqueness is enforced one layer up.
func (ix *Index) Insert(p *Patient) {
	ix.root = ix.insertAt(ix.root, p)
}

func (ix *Index) insertAt(i int, p *Patient) int {
	if i == nilNode {
		ix.size++
		return ix.alloc(p)
	}
	switch {
	case p.ID < ix.nodes[i].patient.ID:
		ix.nodes[i].left = ix.insertAt(ix.nodes[i].left, p)
	case p.ID > ix.nodes[i].patient.ID:
		ix.nodes[i].right = ix.insertAt(ix.nodes[i].right, p)
	}
	return i
}

// Search descends the tree and returns the patient with the given ID, or nil.
func (ix *Index) Search(id int) *Patient {
	i := ix.root
	for i != nilNode {
		n := ix.nodes[i]
		switch {
		case id < n.patient.ID:
			i = n.left
		case id > n.patient.ID:
			i = n.right
		default:
			return n.patient
		}
	}
	return nil
}

// Delete removes the node with the given ID, if present. A node with two
// children takes over its in-order successor's patient record and the
// successor node is excised instead.
func (ix *Index) Delete(id int) {
	ix.root = ix.deleteAt(ix.root, id)
}

func (ix *Index) deleteAt(i, id int) int {
	if i == nilNode {
		return nilNode
	}
	n := &ix.nodes[i]
	switch {
	case id < n.patient.ID:
		n.left = ix.deleteAt(n.left, id)
	case id > n.patient.ID:
		n.right = ix.deleteAt(n.right, id)
	default:
		if n.left == nilNode {
			r := n.right
			ix.release(i)
			return r
		}
		if n.right == nilNode {
			l := n.left
			ix.release(i)
			return l
		}
		succ := n.right
		for ix.nodes[succ].left != nilNode {
			succ = ix.nodes[succ].left
		}
		n.patient = ix.nodes[succ].patient
		n.right = ix.deleteAt(n.right, n.patient.ID)
	}
	return i
}

func (ix *Index) release(i int) {
	ix.nodes[i] = node{left: nilNode, right: nilNode}
	ix.free = append(ix.free, i)
	ix.size--
}

// All returns every patient in ascending ID order.
func (ix *Index) All() []*Patient {
	out := make([]*Patient, 0, ix.size)
	ix.inorder(ix.root, &out)
	return out
}

func (ix *Index) inorder(i int, out *[]*Patient) {
	if i == nilNode {
		return
	}
	ix.inorder(ix.nodes[i].left, out)
	*out = append(*out, ix.nodes[i].patient)
	ix.inorder(ix.nodes[i].right, out)
}

func (ix *Index) IsEmpty() bool { return ix.size == 0 }

func (ix *Index) Size() int { return ix.size }
