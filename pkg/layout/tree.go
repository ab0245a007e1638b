package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// RootID identifies the synthetic root node.
const RootID = "root"

// TreeNode is one positioned happening of the tree model.
type TreeNode struct {
	// ID is the path of 1-based sibling positions, e.g. "1-2-1".
	ID       string
	ParentID string
	Name     string
	Depth    int
	X, Y     float64
	// Probability labels the edge from the parent.
	Probability domain.Probability
	ShowLabel   bool
	// Cumulative is the product of the probabilities from the root.
	Cumulative domain.Probability
	Leaf       bool
	// AnnotationY is where the cumulative probability is drawn. Leaves only.
	AnnotationY float64
}

// TreeLayout is the positioned tree. Nodes are in depth-first pre-order.
type TreeLayout struct {
	Config TreeConfig
	Nodes  []TreeNode
}

// Tree lays out an experiment of any depth covered by cfg.SiblingDistances.
func Tree(exp *domain.Experiment, cfg TreeConfig) (*TreeLayout, error) {
	if depth := exp.Depth(); depth > len(cfg.SiblingDistances) {
		return nil, fmt.Errorf("%w: tree has %d levels, spacing is configured for %d",
			domain.ErrUnsupportedDepth, depth, len(cfg.SiblingDistances))
	}

	out := &TreeLayout{Config: cfg}
	placeChildren(out, exp.Root(), RootID, nil, 0, 0, domain.One())
	return out, nil
}

// placeChildren centers the children of a node at x under it and recurses.
func placeChildren(out *TreeLayout, parent domain.Happening, parentID string, path []int, depth int, x float64, soFar domain.Probability) {
	cfg := out.Config
	k := parent.Len()
	if k == 0 {
		return
	}
	spacing := cfg.SiblingDistances[depth]
	y := -float64(depth+1) * cfg.LevelDistance

	for j := 0; j < k; j++ {
		child := parent.Child(j)
		childPath := append(append([]int(nil), path...), j+1)
		childX := x + (float64(j)-float64(k-1)/2)*spacing
		total := soFar.Mul(child.Probability())

		node := TreeNode{
			ID:          pathID(childPath),
			ParentID:    parentID,
			Name:        child.Name(),
			Depth:       depth + 1,
			X:           childX,
			Y:           y,
			Probability: child.Probability(),
			ShowLabel:   cfg.DrawLabels,
			Cumulative:  total,
			Leaf:        child.IsLeaf(),
		}
		if node.Leaf {
			node.AnnotationY = y - cfg.AnnotationDistance
		}
		out.Nodes = append(out.Nodes, node)

		placeChildren(out, child, node.ID, childPath, depth+1, childX, total)
	}
}

func pathID(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "-")
}

// Leaves returns the leaf nodes in order.
func (t *TreeLayout) Leaves() []TreeNode {
	var leaves []TreeNode
	for _, n := range t.Nodes {
		if n.Leaf {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Node looks up a node by ID.
func (t *TreeLayout) Node(id string) (TreeNode, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return TreeNode{}, false
}
