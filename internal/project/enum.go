package project

// NodeKind names a level of the project tree.
type NodeKind string

const (
	KindProject       NodeKind = "project"
	KindObjective     NodeKind = "objective"
	KindGoal          NodeKind = "goal"
	KindCheckpoint    NodeKind = "checkpoint"
	KindSubCheckpoint NodeKind = "subcheckpoint"
)

var AllNodeKinds = []NodeKind{
	KindProject,
	KindObjective,
	KindGoal,
	KindCheckpoint,
	KindSubCheckpoint,
}

func (k NodeKind) IsValid() bool {
	for _, v := range AllNodeKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Toggleable reports whether the kind carries a done flag.
func (k NodeKind) Toggleable() bool {
	return k == KindCheckpoint || k == KindSubCheckpoint
}

func (k NodeKind) idPrefix() string {
	switch k {
	case KindObjective:
		return "obj"
	case KindGoal:
		return "goal"
	case KindCheckpoint:
		return "cp"
	case KindSubCheckpoint:
		return "sub"
	default:
		return string(k)
	}
}

// depth is the number of path ids needed to address a node of this kind.
func (k NodeKind) depth() int {
	switch k {
	case KindProject:
		return 0
	case KindObjective:
		return 1
	case KindGoal:
		return 2
	case KindCheckpoint:
		return 3
	case KindSubCheckpoint:
		return 4
	default:
		return -1
	}
}
