package feed

import (
	"errors"
	"fmt"
)

// Collection names a per-user live-updating set of records.
type Collection string

const (
	Projects Collection = "projects"
	Tasks    Collection = "tasks"
	Events   Collection = "events"
	Habits   Collection = "habits"
	Areas    Collection = "areas"
	Journal  Collection = "journal"
)

var AllCollections = []Collection{Projects, Tasks, Events, Habits, Areas, Journal}

var ErrUnknownCollection = errors.New("unknown collection")

func (c Collection) IsValid() bool {
	for _, v := range AllCollections {
		if c == v {
			return true
		}
	}
	return false
}

func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
	}
	return c, nil
}
