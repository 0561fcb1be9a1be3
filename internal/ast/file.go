package ast

import "slang/internal/source"

// File is one parsed source file: its top-level declarations in source
// order.
type File struct {
	Span  source.Span
	Items []ItemID
}

type Files struct {
	arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.arena.Get(uint32(id))
}

// Append adds a top-level item; items of a bad file ID are dropped.
func (f *Files) Append(id FileID, item ItemID) {
	if file := f.Get(id); file != nil {
		file.Items = append(file.Items, item)
	}
}
