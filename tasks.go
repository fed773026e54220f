package jotpad

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/jotpad/core"
)

// ErrTaskNotFound is returned when no task has the given id.
var ErrTaskNotFound = errors.New("task not found")

// AddTasks creates a task per non-blank title and puts them in front of the list.
func (w *Workspace) AddTasks(ctx context.Context, titles ...string) ([]core.TaskItem, error) {
	now := time.Now().UnixMilli()
	var added []core.TaskItem
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		added = append(added, core.TaskItem{
			ID:        core.NewItemID(),
			Title:     title,
			CreatedAt: now,
		})
	}
	if len(added) == 0 {
		return nil, nil
	}

	err := w.tasks.Update(ctx, func(items []core.TaskItem) ([]core.TaskItem, error) {
		return append(slices.Clone(added), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// ToggleTask flips the completed flag of the task with id and returns it.
func (w *Workspace) ToggleTask(ctx context.Context, id string) (core.TaskItem, error) {
	var toggled core.TaskItem
	err := w.updateTask(ctx, id, func(t *core.TaskItem) {
		t.Completed = !t.Completed
		toggled = *t
	})
	return toggled, err
}

// SetTaskCompleted marks the task with id as completed or not.
func (w *Workspace) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	return w.updateTask(ctx, id, func(t *core.TaskItem) {
		t.Completed = completed
	})
}

// RenameTask changes the title of the task with id.
func (w *Workspace) RenameTask(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.ErrEmptyTitle
	}
	return w.updateTask(ctx, id, func(t *core.TaskItem) {
		t.Title = title
	})
}

// DeleteTask removes the task with id.
func (w *Workspace) DeleteTask(ctx context.Context, id string) error {
	return w.tasks.Update(ctx, func(items []core.TaskItem) ([]core.TaskItem, error) {
		i := slices.IndexFunc(items, func(t core.TaskItem) bool { return t.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func (w *Workspace) updateTask(ctx context.Context, id string, fn func(*core.TaskItem)) error {
	return w.tasks.Update(ctx, func(items []core.TaskItem) ([]core.TaskItem, error) {
		i := slices.IndexFunc(items, func(t core.TaskItem) bool { return t.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		fn(&items[i])
		return items, nil
	})
}
