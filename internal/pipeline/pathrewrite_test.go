package pipeline

// Notes:
// - hasScheme is exercised through IsLocalRef only; exotic RFC 3986 schemes
//   are not enumerated.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsLocalRef - External reference detection
// ---------------------------------------------------------------------------

func TestIsLocalRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"cat.png", true},
		{"./img/cat.png", true},
		{"notes.pdf", true},
		{"file with space.png", true},
		{"https://example.com/x.png", false},
		{"HTTPS-less-but-https-inside.png", false},
		{"http://example.com/x.png", false},
		{"mailto:me@example.com", false},
		{"data:image/png;base64,AAA", false},
		{"//cdn.example.com/x.js", false},
		{"/abs/x.png", false},
		{"#section", false},
		{"", false},
		{"a/b:c.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			if got := IsLocalRef(tt.ref); got != tt.want {
				t.Errorf("IsLocalRef(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRelocateReferences - Posts and homepage modes
// ---------------------------------------------------------------------------

func TestRelocateReferences(t *testing.T) {
	t.Parallel()

	md := "![cat](cat.png)\n\n![ext](https://example.com/x.png)\n\n[notes](notes.pdf) [top](#top) [mail](mailto:a@b.c)\n"

	tests := []struct {
		name         string
		mode         RelocationMode
		wantContains []string
	}{
		{
			name: "posts page",
			mode: FromPostsPage,
			wantContains: []string{
				`src="../assets/hello-world/cat.png"`,
				`href="../assets/hello-world/notes.pdf"`,
			},
		},
		{
			name: "homepage",
			mode: FromHomepage,
			wantContains: []string{
				`src="assets/hello-world/cat.png"`,
				`href="assets/hello-world/notes.pdf"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := mustRender(t, md)
			RelocateReferences(root, "hello-world", tt.mode)
			got := mustString(t, root)

			want := append(tt.wantContains,
				`src="https://example.com/x.png"`,
				`href="#top"`,
				`href="mailto:a@b.c"`,
			)
			for _, w := range want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q\ngot: %s", w, got)
				}
			}
		})
	}
}

func TestRelocationMode_String(t *testing.T) {
	t.Parallel()

	if FromPostsPage.String() != "posts" || FromHomepage.String() != "homepage" {
		t.Errorf("String() = %q, %q", FromPostsPage, FromHomepage)
	}
}
