package project

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidPath = errors.New("node path does not match node kind")

// NodePath addresses a node by the ids of its ancestors and itself. Only the
// ids up to the addressed level are read.
type NodePath struct {
	ObjectiveID     string `json:"objectiveId,omitempty"`
	GoalID          string `json:"goalId,omitempty"`
	CheckpointID    string `json:"checkpointId,omitempty"`
	SubCheckpointID string `json:"subCheckpointId,omitempty"`
}

func (p NodePath) ids() []string {
	return []string{p.ObjectiveID, p.GoalID, p.CheckpointID, p.SubCheckpointID}
}

// Addresses reports whether the path carries every id needed to reach a node of
// the given kind.
func (p NodePath) Addresses(kind NodeKind) bool {
	depth := kind.depth()
	if depth < 0 {
		return false
	}
	for _, id := range p.ids()[:depth] {
		if id == "" {
			return false
		}
	}
	return true
}

// ParentOf reports whether the path addresses the container a new node of the
// given kind would be appended to.
func (p NodePath) ParentOf(kind NodeKind) bool {
	depth := kind.depth()
	if depth < 1 {
		return false
	}
	for _, id := range p.ids()[:depth-1] {
		if id == "" {
			return false
		}
	}
	return true
}

// NewNodeID returns a kind-prefixed identifier such as "goal-<uuid>".
func NewNodeID(kind NodeKind) string {
	return kind.idPrefix() + "-" + uuid.Must(uuid.NewV7()).String()
}

// The helpers below copy only the slice they touch; untouched siblings keep
// sharing memory with the input.

func updateChild[T any](items []T, id string, idOf func(T) string, fn func(T) (T, bool)) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) != id {
			continue
		}
		updated, ok := fn(items[i])
		if !ok {
			return items, false
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = updated
		return out, true
	}
	return items, false
}

func removeChild[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) != id {
			continue
		}
		out := make([]T, 0, len(items)-1)
		out = append(out, items[:i]...)
		out = append(out, items[i+1:]...)
		return out, true
	}
	return items, false
}

func appendChild[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func objectiveID(o Objective) string { return o.ID }
func goalID(g Goal) string { return g.ID }
func checkpointID(c Checkpoint) string { return c.ID }
func subCheckpointID(s SubCheckpoint) string { return s.ID }

func withObjective(p Project, path NodePath, fn func(Objective) (Objective, bool)) (Project, bool) {
	objectives, ok := updateChild(p.Objectives, path.ObjectiveID, objectiveID, fn)
	if !ok {
		return p, false
	}
	p.Objectives = objectives
	return p, true
}

func withGoal(p Project, path NodePath, fn func(Goal) (Goal, bool)) (Project, bool) {
	return withObjective(p, path, func(o Objective) (Objective, bool) {
		goals, ok := updateChild(o.Goals, path.GoalID, goalID, fn)
		if !ok {
			return o, false
		}
		o.Goals = goals
		return o, true
	})
}

func withCheckpoint(p Project, path NodePath, fn func(Checkpoint) (Checkpoint, bool)) (Project, bool) {
	return withGoal(p, path, func(g Goal) (Goal, bool) {
		checkpoints, ok := updateChild(g.Checkpoints, path.CheckpointID, checkpointID, fn)
		if !ok {
			return g, false
		}
		g.Checkpoints = checkpoints
		return g, true
	})
}

func withSubCheckpoint(p Project, path NodePath, fn func(SubCheckpoint) (SubCheckpoint, bool)) (Project, bool) {
	return withCheckpoint(p, path, func(c Checkpoint) (Checkpoint, bool) {
		subs, ok := updateChild(c.SubCheckpoints, path.SubCheckpointID, subCheckpointID, fn)
		if !ok {
			return c, false
		}
		c.SubCheckpoints = subs
		return c, true
	})
}

// AddNode appends a new node of the given kind under the container addressed by
// parent. The returned bool is false, and p is returned as-is, when the parent
// cannot be resolved.
func AddNode(p Project, kind NodeKind, parent NodePath, title string) (Project, string, bool) {
	id := NewNodeID(kind)
	var (
		out Project
		ok  bool
	)
	switch kind {
	case KindObjective:
		p.Objectives = appendChild(p.Objectives, Objective{ID: id, Title: title, Goals: []Goal{}})
		out, ok = p, true
	case KindGoal:
		out, ok = withObjective(p, parent, func(o Objective) (Objective, bool) {
			o.Goals = appendChild(o.Goals, Goal{ID: id, Title: title, Checkpoints: []Checkpoint{}})
			return o, true
		})
	case KindCheckpoint:
		out, ok = withGoal(p, parent, func(g Goal) (Goal, bool) {
			g.Checkpoints = appendChild(g.Checkpoints, Checkpoint{ID: id, Title: title, SubCheckpoints: []SubCheckpoint{}})
			return g, true
		})
	case KindSubCheckpoint:
		out, ok = withCheckpoint(p, parent, func(c Checkpoint) (Checkpoint, bool) {
			c.SubCheckpoints = appendChild(c.SubCheckpoints, SubCheckpoint{ID: id, Title: title})
			return c, true
		})
	}
	if !ok {
		return p, "", false
	}
	return out, id, true
}

// RenameNode replaces the title of the addressed node. For KindProject the
// project name is replaced.
func RenameNode(p Project, kind NodeKind, path NodePath, title string) (Project, bool) {
	switch kind {
	case KindProject:
		p.Name = title
		return p, true
	case KindObjective:
		return withObjective(p, path, func(o Objective) (Objective, bool) {
			o.Title = title
			return o, true
		})
	case KindGoal:
		return withGoal(p, path, func(g Goal) (Goal, bool) {
			g.Title = title
			return g, true
		})
	case KindCheckpoint:
		return withCheckpoint(p, path, func(c Checkpoint) (Checkpoint, bool) {
			c.Title = title
			return c, true
		})
	case KindSubCheckpoint:
		return withSubCheckpoint(p, path, func(s SubCheckpoint) (SubCheckpoint, bool) {
			s.Title = title
			return s, true
		})
	}
	return p, false
}

// ToggleNode sets the done flag of a checkpoint or sub-checkpoint. A
// checkpoint's flag is independent of its sub-checkpoints.
func ToggleNode(p Project, kind NodeKind, path NodePath, done bool) (Project, bool) {
	switch kind {
	case KindCheckpoint:
		return withCheckpoint(p, path, func(c Checkpoint) (Checkpoint, bool) {
			c.Done = done
			return c, true
		})
	case KindSubCheckpoint:
		return withSubCheckpoint(p, path, func(s SubCheckpoint) (SubCheckpoint, bool) {
			s.Done = done
			return s, true
		})
	}
	return p, false
}

// DeleteNode removes the addressed node together with its descendants.
// Siblings keep their relative order.
func DeleteNode(p Project, kind NodeKind, path NodePath) (Project, bool) {
	switch kind {
	case KindObjective:
		objectives, ok := removeChild(p.Objectives, path.ObjectiveID, objectiveID)
		if !ok {
			return p, false
		}
		p.Objectives = objectives
		return p, true
	case KindGoal:
		return withObjective(p, path, func(o Objective) (Objective, bool) {
			goals, ok := removeChild(o.Goals, path.GoalID, goalID)
			o.Goals = goals
			return o, ok
		})
	case KindCheckpoint:
		return withGoal(p, path, func(g Goal) (Goal, bool) {
			checkpoints, ok := removeChild(g.Checkpoints, path.CheckpointID, checkpointID)
			g.Checkpoints = checkpoints
			return g, ok
		})
	case KindSubCheckpoint:
		return withCheckpoint(p, path, func(c Checkpoint) (Checkpoint, bool) {
			subs, ok := removeChild(c.SubCheckpoints, path.SubCheckpointID, subCheckpointID)
			c.SubCheckpoints = subs
			return c, ok
		})
	}
	return p, false
}

// NodeTitle returns the title of the addressed node, or the project name for
// KindProject.
func NodeTitle(p Project, kind NodeKind, path NodePath) (string, bool) {
	if kind == KindProject {
		return p.Name, true
	}
	for _, o := range p.Objectives {
		if o.ID != path.ObjectiveID {
			continue
		}
		if kind == KindObjective {
			return o.Title, true
		}
		for _, g := range o.Goals {
			if g.ID != path.GoalID {
				continue
			}
			if kind == KindGoal {
				return g.Title, true
			}
			for _, c := range g.Checkpoints {
				if c.ID != path.CheckpointID {
					continue
				}
				if kind == KindCheckpoint {
					return c.Title, true
				}
				for _, s := range c.SubCheckpoints {
					if s.ID == path.SubCheckpointID {
						return s.Title, true
					}
				}
				return "", false
			}
			return "", false
		}
		return "", false
	}
	return "", false
}

// FindGoal returns the goal addressed by path.ObjectiveID and path.GoalID.
func FindGoal(p Project, path NodePath) (Goal, bool) {
	for _, o := range p.Objectives {
		if o.ID != path.ObjectiveID {
			continue
		}
		for _, g := range o.Goals {
			if g.ID == path.GoalID {
				return g, true
			}
		}
	}
	return Goal{}, false
}
