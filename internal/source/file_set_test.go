package source

import (
	"testing"
)

func TestFileSet_Snippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rl", []byte("if x { foo(); }"))

	tests := []struct {
		name    string
		span    Span
		want    string
		wantOK  bool
	}{
		{
			name:   "full file",
			span:   Span{File: id, Start: 0, End: 15},
			want:   "if x { foo(); }",
			wantOK: true,
		},
		{
			name:   "inner block",
			span:   Span{File: id, Start: 5, End: 15},
			want:   "{ foo(); }",
			wantOK: true,
		},
		{
			name:   "empty span",
			span:   Span{File: id, Start: 3, End: 3},
			want:   "",
			wantOK: true,
		},
		{
			name:   "end past content",
			span:   Span{File: id, Start: 0, End: 100},
			want:   "",
			wantOK: false,
		},
		{
			name:   "inverted span",
			span:   Span{File: id, Start: 10, End: 2},
			want:   "",
			wantOK: false,
		},
		{
			name:   "unknown file",
			span:   Span{File: 42, Start: 0, End: 1},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fs.Snippet(tt.span)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Snippet() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rl", []byte("ab\ncd\nef"))

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Errorf("end = %+v, want line 2 col 3", end)
	}
}

func TestFileSet_AddNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("dir//sub/../test.rl", []byte("x"), 0)
	f := fs.Get(id)
	if f.Path != "dir/test.rl" {
		t.Errorf("Path = %q, want normalized form", f.Path)
	}
	if _, ok := fs.GetByPath("dir/test.rl"); !ok {
		t.Error("normalized path must be indexed")
	}
}
