package slug

import "testing"

func TestFromTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "two words", title: "Hello World", want: "hello-world"},
		{name: "already lower", title: "notes", want: "notes"},
		{name: "multiple spaces kept as hyphens", title: "A  B", want: "a--b"},
		{name: "punctuation untouched", title: "Go 1.22 Notes!", want: "go-1.22-notes!"},
		{name: "non ascii lower-cased", title: "Éte Ärger", want: "éte-ärger"},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FromTitle(tt.title); got != tt.want {
				t.Errorf("FromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFromTitle_Deterministic(t *testing.T) {
	t.Parallel()

	first := FromTitle("Hello World")
	for i := 0; i < 10; i++ {
		if got := FromTitle("Hello World"); got != first {
			t.Fatalf("FromTitle changed between calls: %q then %q", first, got)
		}
	}
}
