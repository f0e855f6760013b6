package domain

import "strings"

// Prepend puts item in front of items. Lists are displayed newest first.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// EditText replaces the text of the item with id. Only its author may edit.
// changed is false when the id is unknown.
func EditText[T Target[T]](editor User, items []T, id, text string) ([]T, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, false, ErrEmptyText
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return items, false, nil
	}
	if editor.ID == "" || items[idx].AuthorID() != editor.ID {
		return items, false, ErrNotOwner
	}
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = items[idx].WithText(text)
	return out, true, nil
}

// Remove drops the item with id. Only its author may delete it.
func Remove[T Target[T]](editor User, items []T, id string) ([]T, bool, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, false, nil
	}
	if editor.ID == "" || items[idx].AuthorID() != editor.ID {
		return items, false, ErrNotOwner
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), true, nil
}
