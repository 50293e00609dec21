// Package models defines server-side data models persisted in the database.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// FileType is the kind of a file record.
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// Valid reports whether t is one of the supported file types.
func (t FileType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// ParentRef is the position of a record in its owner's hierarchy: either
// the root or a reference to a folder record. The zero value is Root.
type ParentRef struct {
	folderID string
}

// Root is the top level of a user's hierarchy.
var Root = ParentRef{}

// FolderRef returns a reference to the folder with the given id.
func FolderRef(id string) ParentRef {
	return ParentRef{folderID: id}
}

// IsRoot reports whether p is the root.
func (p ParentRef) IsRoot() bool {
	return p.folderID == ""
}

// FolderID returns the referenced folder id, or "" for the root.
func (p ParentRef) FolderID() string {
	return p.folderID
}

func (p ParentRef) String() string {
	if p.IsRoot() {
		return "0"
	}
	return p.folderID
}

// ParseParentRef converts the wire form of a parent id ("", "0" or a
// folder id) into a ParentRef.
func ParseParentRef(s string) ParentRef {
	if s == "" || s == "0" {
		return Root
	}
	return FolderRef(s)
}

// MarshalJSON renders the root as the number 0 and a folder as its id.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.folderID)
}

// UnmarshalJSON accepts 0, "0", null, or a folder id string.
func (p *ParentRef) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*p = Root
	case float64:
		if value != 0 {
			*p = FolderRef(strconv.FormatFloat(value, 'f', -1, 64))
			return nil
		}
		*p = Root
	case string:
		*p = ParseParentRef(value)
	default:
		return errors.New("parentId must be 0 or a folder id")
	}
	return nil
}

// File describes a folder or a stored file. Non-folder records own exactly
// one blob at LocalPath; folders never have one.
type File struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      FileType  `json:"type"`
	IsPublic  bool      `json:"isPublic"`
	ParentID  ParentRef `json:"parentId"`
	LocalPath string    `json:"localPath,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// ThumbnailPath returns the sibling path of the rendition with the given width.
func ThumbnailPath(localPath string, width int) string {
	return fmt.Sprintf("%s_%d", localPath, width)
}
