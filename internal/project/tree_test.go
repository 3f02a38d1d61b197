package project_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/saulo-duarte/organon/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleProject builds two objectives, each with two goals, each with two
// checkpoints carrying two sub-checkpoints.
func sampleProject() project.Project {
	p := project.Project{Name: "Sample"}
	for _, o := range []string{"obj-a", "obj-b"} {
		obj := project.Objective{ID: o, Title: o}
		for _, g := range []string{"goal-a", "goal-b"} {
			goal := project.Goal{ID: g, Title: o + "/" + g}
			for _, c := range []string{"cp-a", "cp-b"} {
				goal.Checkpoints = append(goal.Checkpoints, project.Checkpoint{
					ID:    c,
					Title: o + "/" + g + "/" + c,
					SubCheckpoints: []project.SubCheckpoint{
						{ID: "sub-a", Title: "a", Done: true},
						{ID: "sub-b", Title: "b"},
					},
				})
			}
			obj.Goals = append(obj.Goals, goal)
		}
		p.Objectives = append(p.Objectives, obj)
	}
	return p
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestAddNode(t *testing.T) {
	t.Run("objective appends at the end", func(t *testing.T) {
		in := sampleProject()
		out, id, ok := project.AddNode(in, project.KindObjective, project.NodePath{}, "Third")
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(id, "obj-"))
		require.Len(t, out.Objectives, 3)
		assert.Equal(t, "Third", out.Objectives[2].Title)
		assert.NotNil(t, out.Objectives[2].Goals)
		assert.Empty(t, out.Objectives[2].Goals)
		assert.Len(t, in.Objectives, 2)
	})

	t.Run("sub-checkpoint into empty checkpoint", func(t *testing.T) {
		in := project.Project{Objectives: []project.Objective{{
			ID: "obj-1",
			Goals: []project.Goal{{
				ID:          "goal-1",
				Checkpoints: []project.Checkpoint{{ID: "cp-1", Title: "empty", SubCheckpoints: []project.SubCheckpoint{}}},
			}},
		}}}
		path := project.NodePath{ObjectiveID: "obj-1", GoalID: "goal-1", CheckpointID: "cp-1"}

		out, id, ok := project.AddNode(in, project.KindSubCheckpoint, path, "first step")
		require.True(t, ok)

		subs := out.Objectives[0].Goals[0].Checkpoints[0].SubCheckpoints
		require.Len(t, subs, 1)
		assert.Equal(t, id, subs[0].ID)
		assert.Equal(t, "first step", subs[0].Title)
		assert.False(t, subs[0].Done)
		assert.True(t, strings.HasPrefix(id, "sub-"))
		assert.Empty(t, in.Objectives[0].Goals[0].Checkpoints[0].SubCheckpoints)
	})

	t.Run("unknown parent is a no-op", func(t *testing.T) {
		in := sampleProject()
		before := mustJSON(t, in)
		out, id, ok := project.AddNode(in, project.KindGoal, project.NodePath{ObjectiveID: "obj-gone"}, "x")
		assert.False(t, ok)
		assert.Empty(t, id)
		assert.Equal(t, before, mustJSON(t, out))
	})

	t.Run("project kind cannot be added", func(t *testing.T) {
		_, _, ok := project.AddNode(sampleProject(), project.KindProject, project.NodePath{}, "x")
		assert.False(t, ok)
	})

	t.Run("ids are unique", func(t *testing.T) {
		p := project.Project{}
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			var id string
			var ok bool
			p, id, ok = project.AddNode(p, project.KindObjective, project.NodePath{}, "o")
			require.True(t, ok)
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestRenameDeepSubCheckpointLeavesSiblingsUntouched(t *testing.T) {
	in := sampleProject()
	before := mustJSON(t, in)
	path := project.NodePath{ObjectiveID: "obj-b", GoalID: "goal-a", CheckpointID: "cp-b", SubCheckpointID: "sub-b"}

	out, ok := project.RenameNode(in, project.KindSubCheckpoint, path, "renamed")
	require.True(t, ok)

	assert.Equal(t, before, mustJSON(t, in), "input must not change")
	assert.Equal(t, "renamed", out.Objectives[1].Goals[0].Checkpoints[1].SubCheckpoints[1].Title)

	// Restoring the title gives back the original document exactly.
	restored := out
	restored.Objectives[1].Goals[0].Checkpoints[1].SubCheckpoints[1].Title = "b"
	assert.Equal(t, before, mustJSON(t, restored))

	// Branches off the path share memory with the input.
	assert.Same(t, &in.Objectives[0].Goals[0], &out.Objectives[0].Goals[0])
	assert.Same(t, &in.Objectives[1].Goals[1].Checkpoints[0], &out.Objectives[1].Goals[1].Checkpoints[0])
	assert.Same(t, &in.Objectives[1].Goals[0].Checkpoints[0].SubCheckpoints[0], &out.Objectives[1].Goals[0].Checkpoints[0].SubCheckpoints[0])
	assert.NotSame(t, &in.Objectives[1].Goals[0].Checkpoints[1].SubCheckpoints[1], &out.Objectives[1].Goals[0].Checkpoints[1].SubCheckpoints[1])
}

func TestRenameNode(t *testing.T) {
	tests := []struct {
		name  string
		kind  project.NodeKind
		path  project.NodePath
		title func(project.Project) string
	}{
		{
			name:  "project",
			kind:  project.KindProject,
			title: func(p project.Project) string { return p.Name },
		},
		{
			name:  "objective",
			kind:  project.KindObjective,
			path:  project.NodePath{ObjectiveID: "obj-b"},
			title: func(p project.Project) string { return p.Objectives[1].Title },
		},
		{
			name:  "goal",
			kind:  project.KindGoal,
			path:  project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-b"},
			title: func(p project.Project) string { return p.Objectives[0].Goals[1].Title },
		},
		{
			name:  "checkpoint",
			kind:  project.KindCheckpoint,
			path:  project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a", CheckpointID: "cp-b"},
			title: func(p project.Project) string { return p.Objectives[0].Goals[0].Checkpoints[1].Title },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := project.RenameNode(sampleProject(), tt.kind, tt.path, "new title")
			require.True(t, ok)
			assert.Equal(t, "new title", tt.title(out))
		})
	}

	t.Run("stale path", func(t *testing.T) {
		in := sampleProject()
		path := project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a", CheckpointID: "cp-missing"}
		out, ok := project.RenameNode(in, project.KindCheckpoint, path, "x")
		assert.False(t, ok)
		assert.Equal(t, mustJSON(t, in), mustJSON(t, out))
	})
}

func TestToggleNode(t *testing.T) {
	t.Run("checkpoint keeps its sub-checkpoints", func(t *testing.T) {
		in := sampleProject()
		path := project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a", CheckpointID: "cp-a"}

		out, ok := project.ToggleNode(in, project.KindCheckpoint, path, true)
		require.True(t, ok)

		cp := out.Objectives[0].Goals[0].Checkpoints[0]
		assert.True(t, cp.Done)
		assert.True(t, cp.SubCheckpoints[0].Done)
		assert.False(t, cp.SubCheckpoints[1].Done)
		assert.False(t, in.Objectives[0].Goals[0].Checkpoints[0].Done)
	})

	t.Run("sub-checkpoint", func(t *testing.T) {
		path := project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a", CheckpointID: "cp-a", SubCheckpointID: "sub-a"}
		out, ok := project.ToggleNode(sampleProject(), project.KindSubCheckpoint, path, false)
		require.True(t, ok)
		assert.False(t, out.Objectives[0].Goals[0].Checkpoints[0].SubCheckpoints[0].Done)
		assert.False(t, out.Objectives[0].Goals[0].Checkpoints[0].Done)
	})

	t.Run("goals have no done flag", func(t *testing.T) {
		_, ok := project.ToggleNode(sampleProject(), project.KindGoal, project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a"}, true)
		assert.False(t, ok)
	})
}

func TestDeleteNode(t *testing.T) {
	t.Run("goal takes its checkpoints with it", func(t *testing.T) {
		in := sampleProject()
		out, ok := project.DeleteNode(in, project.KindGoal, project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a"})
		require.True(t, ok)

		require.Len(t, out.Objectives[0].Goals, 1)
		assert.Equal(t, "goal-b", out.Objectives[0].Goals[0].ID)
		assert.NotContains(t, mustJSON(t, out.Objectives[0]), "obj-a/goal-a/")
		assert.Len(t, in.Objectives[0].Goals, 2)
		assert.Len(t, out.Objectives[1].Goals, 2)
	})

	t.Run("sibling order is stable", func(t *testing.T) {
		in := project.Project{}
		var ids []string
		for i := 0; i < 4; i++ {
			var id string
			in, id, _ = project.AddNode(in, project.KindObjective, project.NodePath{}, "o")
			ids = append(ids, id)
		}

		out, ok := project.DeleteNode(in, project.KindObjective, project.NodePath{ObjectiveID: ids[1]})
		require.True(t, ok)
		require.Len(t, out.Objectives, 3)
		assert.Equal(t, []string{ids[0], ids[2], ids[3]}, []string{out.Objectives[0].ID, out.Objectives[1].ID, out.Objectives[2].ID})
		assert.Len(t, in.Objectives, 4)
	})

	t.Run("sub-checkpoint", func(t *testing.T) {
		path := project.NodePath{ObjectiveID: "obj-b", GoalID: "goal-b", CheckpointID: "cp-a", SubCheckpointID: "sub-a"}
		out, ok := project.DeleteNode(sampleProject(), project.KindSubCheckpoint, path)
		require.True(t, ok)
		subs := out.Objectives[1].Goals[1].Checkpoints[0].SubCheckpoints
		require.Len(t, subs, 1)
		assert.Equal(t, "sub-b", subs[0].ID)
	})

	t.Run("missing node", func(t *testing.T) {
		in := sampleProject()
		out, ok := project.DeleteNode(in, project.KindCheckpoint, project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-a", CheckpointID: "cp-z"})
		assert.False(t, ok)
		assert.Equal(t, mustJSON(t, in), mustJSON(t, out))
	})
}

func TestNodePath(t *testing.T) {
	full := project.NodePath{ObjectiveID: "o", GoalID: "g", CheckpointID: "c", SubCheckpointID: "s"}

	assert.True(t, full.Addresses(project.KindSubCheckpoint))
	assert.True(t, project.NodePath{}.Addresses(project.KindProject))
	assert.False(t, project.NodePath{ObjectiveID: "o"}.Addresses(project.KindGoal))
	assert.False(t, full.Addresses(project.NodeKind("task")))

	assert.True(t, project.NodePath{}.ParentOf(project.KindObjective))
	assert.True(t, project.NodePath{ObjectiveID: "o", GoalID: "g"}.ParentOf(project.KindCheckpoint))
	assert.False(t, project.NodePath{ObjectiveID: "o"}.ParentOf(project.KindCheckpoint))
	assert.False(t, full.ParentOf(project.KindProject))
}

func TestNodeTitle(t *testing.T) {
	p := sampleProject()

	title, ok := project.NodeTitle(p, project.KindCheckpoint, project.NodePath{ObjectiveID: "obj-b", GoalID: "goal-a", CheckpointID: "cp-b"})
	require.True(t, ok)
	assert.Equal(t, "obj-b/goal-a/cp-b", title)

	_, ok = project.NodeTitle(p, project.KindGoal, project.NodePath{ObjectiveID: "obj-b", GoalID: "goal-z"})
	assert.False(t, ok)

	goal, ok := project.FindGoal(p, project.NodePath{ObjectiveID: "obj-a", GoalID: "goal-b"})
	require.True(t, ok)
	assert.Equal(t, "obj-a/goal-b", goal.Title)
}

func TestNormalizeReplacesNilLists(t *testing.T) {
	p := project.Project{Objectives: []project.Objective{{ID: "obj-1", Goals: []project.Goal{{ID: "goal-1", Checkpoints: []project.Checkpoint{{ID: "cp-1"}}}}}}}
	doc := mustJSON(t, p.Document())

	assert.Contains(t, doc, `"subCheckpoints":[]`)
	assert.NotContains(t, doc, "null")
	assert.Nil(t, p.Objectives[0].Goals[0].Checkpoints[0].SubCheckpoints)
	assert.Equal(t, `{"name":"","description":"","fullDescription":"","createdAt":"0001-01-01T00:00:00Z","objectives":[]}`, mustJSON(t, project.Project{}.Document()))
}
