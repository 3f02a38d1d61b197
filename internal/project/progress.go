package project

// CheckpointsProgress weighs every checkpoint and every sub-checkpoint as one
// item and returns the done share as a percentage. An empty list is 0%.
func CheckpointsProgress(checkpoints []Checkpoint) float64 {
	total, done := 0, 0
	for _, cp := range checkpoints {
		total += 1 + len(cp.SubCheckpoints)
		if cp.Done {
			done++
		}
		for _, sc := range cp.SubCheckpoints {
			if sc.Done {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// ProjectProgress is the unweighted mean of every goal's progress across all
// objectives; a goal with one checkpoint counts as much as a goal with fifty.
func ProjectProgress(p Project) float64 {
	sum, goals := 0.0, 0
	for _, o := range p.Objectives {
		for _, g := range o.Goals {
			sum += CheckpointsProgress(g.Checkpoints)
			goals++
		}
	}
	if goals == 0 {
		return 0
	}
	return sum / float64(goals)
}

// GoalProgress maps "objectiveID/goalID" to the goal's progress.
func GoalProgress(p Project) map[string]float64 {
	out := make(map[string]float64)
	for _, o := range p.Objectives {
		for _, g := range o.Goals {
			out[o.ID+"/"+g.ID] = CheckpointsProgress(g.Checkpoints)
		}
	}
	return out
}
