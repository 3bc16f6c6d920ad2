package domain

import "time"

// TaskPatch carries the fields a task update may change. Nil means "not
// provided"; provided-but-equal values produce no activity.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	// AssigneeIDs replaces the assignee set when non-nil.
	AssigneeIDs []string
}

// UserNameResolver turns a user id into a display name for assignment
// activity entries.
type UserNameResolver func(userID string) string

// Diff field stringification lives here, once per field type, so the
// display format of old/new values is defined in exactly one place.
const activityDateLayout = "2006-01-02"

func stringifyStatus(s TaskStatus) string     { return string(s) }
func stringifyPriority(p TaskPriority) string { return string(p) }

func stringifyDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(activityDateLayout)
}

// NewCreatedActivity is the single entry recorded when a task or requirement
// is created. No field or value payload.
func NewCreatedActivity(targetID, actorID string, now time.Time) Activity {
	return Activity{TargetID: targetID, Type: ActivityCreated, ActorID: actorID, At: now}
}

// DiffTask compares a task's pre-mutation state against a patch and returns
// the activity entries the mutation produces, all sharing one timestamp.
// The comparison runs before the update is applied; persisting the entries
// atomically with the update is the caller's job.
func DiffTask(existing *Task, patch TaskPatch, actorID string, now time.Time, resolveName UserNameResolver) []Activity {
	var out []Activity

	fieldChange := func(field, oldV, newV string) {
		out = append(out, Activity{
			TargetID: existing.ID,
			Type:     ActivityFieldChange,
			Field:    field,
			OldValue: oldV,
			NewValue: newV,
			ActorID:  actorID,
			At:       now,
		})
	}
	softChange := func(field string) {
		out = append(out, Activity{
			TargetID: existing.ID,
			Type:     ActivityUpdated,
			Field:    field,
			ActorID:  actorID,
			At:       now,
		})
	}

	if patch.Status != nil && *patch.Status != existing.Status {
		fieldChange("status", stringifyStatus(existing.Status), stringifyStatus(*patch.Status))
	}
	if patch.Priority != nil && *patch.Priority != existing.Priority {
		fieldChange("priority", stringifyPriority(existing.Priority), stringifyPriority(*patch.Priority))
	}
	if patch.DueDate != nil && !sameDate(existing.DueDate, patch.DueDate) {
		fieldChange("due_date", stringifyDate(existing.DueDate), stringifyDate(patch.DueDate))
	}

	// Title and description are presentational; record that they changed
	// without carrying the values.
	if patch.Title != nil && *patch.Title != existing.Title {
		softChange("title")
	}
	if patch.Description != nil && *patch.Description != existing.Description {
		softChange("description")
	}

	if patch.AssigneeIDs != nil {
		added, removed := diffIDSets(existing.AssigneeIDs, patch.AssigneeIDs)
		for _, id := range added {
			out = append(out, Activity{
				TargetID: existing.ID,
				Type:     ActivityAssigned,
				NewValue: resolveName(id),
				ActorID:  actorID,
				At:       now,
			})
		}
		for _, id := range removed {
			out = append(out, Activity{
				TargetID: existing.ID,
				Type:     ActivityUnassigned,
				OldValue: resolveName(id),
				ActorID:  actorID,
				At:       now,
			})
		}
	}

	return out
}

// RequirementPatch mirrors TaskPatch for requirements.
type RequirementPatch struct {
	Title       *string
	Description *string
	Status      *RequirementStatus
	Priority    *TaskPriority
}

// DiffRequirement compares a requirement's pre-mutation state against a
// patch, same contract as DiffTask.
func DiffRequirement(existing *Requirement, patch RequirementPatch, actorID string, now time.Time) []Activity {
	var out []Activity

	if patch.Status != nil && *patch.Status != existing.Status {
		out = append(out, Activity{
			TargetID: existing.ID,
			Type:     ActivityFieldChange,
			Field:    "status",
			OldValue: string(existing.Status),
			NewValue: string(*patch.Status),
			ActorID:  actorID,
			At:       now,
		})
	}
	if patch.Priority != nil && *patch.Priority != existing.Priority {
		out = append(out, Activity{
			TargetID: existing.ID,
			Type:     ActivityFieldChange,
			Field:    "priority",
			OldValue: stringifyPriority(existing.Priority),
			NewValue: stringifyPriority(*patch.Priority),
			ActorID:  actorID,
			At:       now,
		})
	}
	if patch.Title != nil && *patch.Title != existing.Title {
		out = append(out, Activity{TargetID: existing.ID, Type: ActivityUpdated, Field: "title", ActorID: actorID, At: now})
	}
	if patch.Description != nil && *patch.Description != existing.Description {
		out = append(out, Activity{TargetID: existing.ID, Type: ActivityUpdated, Field: "description", ActorID: actorID, At: now})
	}

	return out
}

// sameDate compares due dates by calendar value, not instant identity, so an
// entry is only recorded when the displayed old/new values would differ.
func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Format(activityDateLayout) == b.Format(activityDateLayout)
}

// diffIDSets returns ids present only in next (added) and only in prev
// (removed), preserving input order.
func diffIDSets(prev, next []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		prevSet[id] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, id := range next {
		nextSet[id] = struct{}{}
	}
	for _, id := range next {
		if _, ok := prevSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if _, ok := nextSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
