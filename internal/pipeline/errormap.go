package pipeline

import (
	"sort"

	"foliogate/internal/domain"
)

// ErrorMap holds field validation messages keyed by file, row and field.
type ErrorMap map[domain.ValidationKey]string

// Set records msg for k.
func (m ErrorMap) Set(k domain.ValidationKey, msg string) { m[k] = msg }

// Get returns the message for k, if any.
func (m ErrorMap) Get(k domain.ValidationKey) (string, bool) {
	msg, ok := m[k]
	return msg, ok
}

// Clear removes the message for k.
func (m ErrorMap) Clear(k domain.ValidationKey) { delete(m, k) }

// ClearRow removes every message of one row.
func (m ErrorMap) ClearRow(fileIndex int, rowID string) {
	for k := range m {
		if k.FileIndex == fileIndex && k.RowID == rowID {
			delete(m, k)
		}
	}
}

// ClearFile removes every message of one file.
func (m ErrorMap) ClearFile(fileIndex int) {
	for k := range m {
		if k.FileIndex == fileIndex {
			delete(m, k)
		}
	}
}

// RowHasErrors reports whether any field of the row is invalid.
func (m ErrorMap) RowHasErrors(fileIndex int, rowID string) bool {
	for k := range m {
		if k.FileIndex == fileIndex && k.RowID == rowID {
			return true
		}
	}
	return false
}

// List returns every entry in a stable order.
func (m ErrorMap) List() []domain.ValidationError {
	out := make([]domain.ValidationError, 0, len(m))
	for k, msg := range m {
		out = append(out, domain.ValidationError{ValidationKey: k, Message: msg})
	}
	sortErrors(out)
	return out
}

// ListFile returns the entries of one file in a stable order.
func (m ErrorMap) ListFile(fileIndex int) []domain.ValidationError {
	out := []domain.ValidationError{}
	for k, msg := range m {
		if k.FileIndex == fileIndex {
			out = append(out, domain.ValidationError{ValidationKey: k, Message: msg})
		}
	}
	sortErrors(out)
	return out
}

func sortErrors(errs []domain.ValidationError) {
	sort.Slice(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if a.FileIndex != b.FileIndex {
			return a.FileIndex < b.FileIndex
		}
		if a.RowID != b.RowID {
			return a.RowID < b.RowID
		}
		return a.Field < b.Field
	})
}
