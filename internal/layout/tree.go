package layout

import (
	"github.com/temirov/repokit/internal/types"
)

// TreeAssembler collects walk lines into a nested node structure.
type TreeAssembler struct {
	root      *types.TreeNode
	ancestors []*types.TreeNode
}

// Add appends the line below its parent. Lines must arrive in walk order.
func (assembler *TreeAssembler) Add(line Line) {
	node := &types.TreeNode{
		Path:    line.Path,
		Name:    line.Name,
		Type:    types.NodeTypeFile,
		Skipped: line.Skipped,
	}
	if line.IsDir {
		node.Type = types.NodeTypeDirectory
	}

	if line.Depth == 0 || assembler.root == nil {
		assembler.root = node
		assembler.ancestors = []*types.TreeNode{node}
		return
	}
	if line.Depth > len(assembler.ancestors) {
		return
	}
	assembler.ancestors = assembler.ancestors[:line.Depth]
	parent := assembler.ancestors[line.Depth-1]
	parent.Children = append(parent.Children, node)
	assembler.ancestors = append(assembler.ancestors, node)
}

// Root returns the assembled tree, or nil when no line was added.
func (assembler *TreeAssembler) Root() *types.TreeNode {
	return assembler.root
}
