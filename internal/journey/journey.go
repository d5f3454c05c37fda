// Package journey tracks the pages a user has visited within a workflow and decides which
// pages they may reach next.
//
// A Journey is an immutable value: every operation returns a new Journey and leaves the
// receiver untouched, so a handler can compute the next journey and only persist it once
// the rest of the request has succeeded.
package journey

import "encoding/json"

// Journey is the ordered history of steps visited in one workflow family.
type Journey struct {
	steps []Step
}

// New returns a journey holding steps in order.
func New(steps ...Step) Journey {
	return Journey{steps: clone(steps)}
}

// Steps returns a copy of the visited steps.
func (j Journey) Steps() []Step {
	return clone(j.steps)
}

// Len returns the number of visited steps.
func (j Journey) Len() int {
	return len(j.steps)
}

// IsEmpty reports whether nothing has been visited.
func (j Journey) IsEmpty() bool {
	return len(j.steps) == 0
}

// Last returns the most recent step.
func (j Journey) Last() (Step, bool) {
	if len(j.steps) == 0 {
		return Step{}, false
	}
	return j.steps[len(j.steps)-1], true
}

// Contains reports whether page has been visited.
func (j Journey) Contains(page Page) bool {
	return j.lastIndex(page) >= 0
}

// Find returns the last visit to page.
func (j Journey) Find(page Page) (Step, bool) {
	i := j.lastIndex(page)
	if i < 0 {
		return Step{}, false
	}
	return j.steps[i], true
}

// AddIfNotExists appends step unless it is already the last step, so revisiting or
// refreshing a page leaves the journey unchanged.
func (j Journey) AddIfNotExists(step Step) Journey {
	if last, ok := j.Last(); ok && last == step {
		return j
	}
	steps := make([]Step, len(j.steps), len(j.steps)+1)
	copy(steps, j.steps)
	return Journey{steps: append(steps, step)}
}

// ClearRestOfJourney drops everything after the last visit to step.Page and records step
// as that visit, refreshing its path. If step.Page was never visited, step is appended so
// the journey always ends at the current page.
func (j Journey) ClearRestOfJourney(step Step) Journey {
	i := j.lastIndex(step.Page)
	if i < 0 {
		return j.AddIfNotExists(step)
	}
	steps := clone(j.steps[:i+1])
	steps[i] = step
	return Journey{steps: steps}
}

// PreviousOrDefault returns the path visited immediately before the last visit to page,
// or "" when page is first or absent.
func (j Journey) PreviousOrDefault(page Page) string {
	i := j.lastIndex(page)
	if i <= 0 {
		return ""
	}
	return j.steps[i-1].Path
}

// MarshalJSON encodes the journey as a plain array of steps.
func (j Journey) MarshalJSON() ([]byte, error) {
	if j.steps == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j.steps)
}

// UnmarshalJSON decodes an array of steps.
func (j *Journey) UnmarshalJSON(data []byte) error {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return err
	}
	j.steps = steps
	return nil
}

func (j Journey) lastIndex(page Page) int {
	for i := len(j.steps) - 1; i >= 0; i-- {
		if j.steps[i].Page == page {
			return i
		}
	}
	return -1
}

func clone(steps []Step) []Step {
	if len(steps) == 0 {
		return nil
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}
