// Package relevance finds which of the user's folders, files, and events a
// message textually references, and scores how confident the engine is in
// that inference.
//
// Matching is case-insensitive substring containment only. The direction
// per collection is fixed: folders and events match when the message
// contains the entity's name; files additionally match when the file's
// content contains the entire message. That last rule means very short
// messages match many files — intentional low-precision behavior inherited
// from the product, not a bug.
package relevance

import (
	"strings"

	"github.com/majordome-ai/majordome/internal/entity"
)

// Set is the subset of snapshot entities a message references. Each slice
// is an order-preserving subsequence of the corresponding snapshot list.
type Set struct {
	Folders []entity.Folder `json:"folders"`
	Files   []entity.File   `json:"files"`
	Events  []entity.Event  `json:"events"`
}

// Empty reports whether the set references nothing.
func (s Set) Empty() bool {
	return len(s.Folders) == 0 && len(s.Files) == 0 && len(s.Events) == 0
}

// FindRelevant filters the snapshot down to the entities the message
// references. The snapshot is never mutated; empty results are empty
// slices, never an error.
func FindRelevant(message string, snap *entity.Snapshot) Set {
	set := Set{
		Folders: []entity.Folder{},
		Files:   []entity.File{},
		Events:  []entity.Event{},
	}
	if snap == nil {
		return set
	}

	msg := strings.ToLower(message)

	for _, f := range snap.Folders {
		if f.Name != "" && strings.Contains(msg, strings.ToLower(f.Name)) {
			set.Folders = append(set.Folders, f)
		}
	}
	for _, f := range snap.Files {
		nameHit := f.Name != "" && strings.Contains(msg, strings.ToLower(f.Name))
		contentHit := msg != "" && f.Content != "" &&
			strings.Contains(strings.ToLower(f.Content), msg)
		if nameHit || contentHit {
			set.Files = append(set.Files, f)
		}
	}
	for _, e := range snap.Events {
		if e.Title != "" && strings.Contains(msg, strings.ToLower(e.Title)) {
			set.Events = append(set.Events, e)
		}
	}
	return set
}
