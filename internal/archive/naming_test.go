package archive

import "testing"

func TestEntryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Already-normalized paths pass through unchanged
		{"test.txt", "test.txt"},
		{"foo/test.txt", "foo/test.txt"},
		{"some/file/deep/down", "some/file/deep/down"},

		// Doubled and trailing separators collapse
		{"foo//test.txt", "foo/test.txt"},
		{"foo/test.txt//", "foo/test.txt"},

		// Current-directory segments are dropped
		{"./test.txt", "test.txt"},
		{"foo/./test.txt", "foo/test.txt"},

		// Parent references pop, and never escape the root
		{"../some/file", "some/file"},
		{"some/file/buried/../deep/down", "some/file/deep/down"},
		{"a/../b", "b"},

		// Absolute paths become archive-relative
		{"/file/with/absolute/path", "file/with/absolute/path"},
		{"/file/with/absolute/../path", "file/with/path"},
		{"/../../crazy", "crazy"},
		{"/a/b", "a/b"},

		// Pathological inputs normalize to empty
		{"..", ""},
		{"../..", ""},
		{"/", ""},
		{".", ""},
	}

	for _, tt := range tests {
		got := EntryName(tt.in)
		if got != tt.want {
			t.Errorf("EntryName(%q) = %q, expected %q", tt.in, got, tt.want)
		}

		// Double normalization gives the same result
		if again := EntryName(got); again != got {
			t.Errorf("EntryName(%q) not idempotent: %q -> %q", tt.in, got, again)
		}
	}
}
