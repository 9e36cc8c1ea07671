package task

import "ticked/internal/model"

// Pool slice helpers. Every mutation path is responsible for keeping the
// three pools consistent; these keep the call sites short.

func cloneTasks(in []model.Task) []model.Task {
	if in == nil {
		return nil
	}
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}

func findByID(pool []model.Task, id model.TaskID) (model.Task, bool) {
	for _, t := range pool {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func removeByID(pool []model.Task, id model.TaskID) []model.Task {
	out := pool[:0]
	for _, t := range pool {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func prepend(pool []model.Task, t model.Task) []model.Task {
	return append([]model.Task{t}, pool...)
}

// upsertHead head-inserts t, removing any existing entry with the same id.
func upsertHead(pool []model.Task, t model.Task) []model.Task {
	return prepend(removeByID(pool, t.ID), t)
}

// replaceInPlace overwrites matching entries without changing position.
func replaceInPlace(pool []model.Task, t model.Task) {
	for i := range pool {
		if pool[i].ID == t.ID {
			pool[i] = t
		}
	}
}

func patchInPlace(pool []model.Task, id model.TaskID, patch model.TaskPatch) {
	for i := range pool {
		if pool[i].ID == id {
			patch.Apply(&pool[i])
		}
	}
}

func setListID(pool []model.Task, id model.TaskID, listID *string) {
	for i := range pool {
		if pool[i].ID == id {
			pool[i].ListID = listID
		}
	}
}

func appendAttachment(pool []model.Task, id model.TaskID, att model.Attachment) {
	for i := range pool {
		if pool[i].ID == id {
			pool[i].Attachments = append(pool[i].Attachments, att)
		}
	}
}

func dropAttachment(pool []model.Task, id model.TaskID, attachmentID string) {
	for i := range pool {
		if pool[i].ID != id {
			continue
		}
		kept := pool[i].Attachments[:0]
		for _, a := range pool[i].Attachments {
			if a.ID != attachmentID {
				kept = append(kept, a)
			}
		}
		pool[i].Attachments = kept
	}
}

func setAttachments(pool []model.Task, id model.TaskID, atts []model.Attachment) {
	for i := range pool {
		if pool[i].ID == id {
			pool[i].Attachments = atts
		}
	}
}
