package extract

type stage struct {
	name string
	pass pass
}

// pipeline is the fixed lowering order. Later passes rely on the shapes
// produced by earlier ones.
var pipeline = []stage{
	{"embedded", expandEmbedded},
	{"interpolation", splitInterpolation},
	{"splat", expandSplat},
	{"do", insertDo},
	{"blocks", groupBlocks},
	{"controls", processControls},
	{"attributes", processAttributes},
	{"flatten", flattenMultis},
	{"statics", mergeStatics},
}

// Step is the tree after one lowering pass.
type Step struct {
	Name string
	Tree any
}

// Lower runs the lowering pipeline over a raw parser tree. Lowering never
// fails: shapes no pass recognises are carried through unchanged.
func Lower(raw []any) any {
	var tree any = raw
	for _, st := range pipeline {
		tree = apply(st.pass, tree)
	}
	return tree
}

// LowerSteps is Lower keeping every intermediate tree.
func LowerSteps(raw []any) []Step {
	steps := make([]Step, 0, len(pipeline))
	var tree any = raw
	for _, st := range pipeline {
		tree = apply(st.pass, tree)
		steps = append(steps, Step{Name: st.name, Tree: tree})
	}
	return steps
}
