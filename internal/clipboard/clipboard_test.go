package clipboard

import "testing"

func TestCandidates(t *testing.T) {
	tests := []struct {
		goos    string
		wayland bool
		first   string
		n       int
	}{
		{"darwin", false, "pbcopy", 1},
		{"windows", false, "cmd", 1},
		{"linux", false, "xclip", 2},
		{"linux", true, "wl-copy", 3},
		{"freebsd", false, "xclip", 2},
	}
	for _, tt := range tests {
		got := candidates(tt.goos, tt.wayland)
		if len(got) != tt.n || got[0].name != tt.first {
			t.Errorf("candidates(%s, %v)=%v, want %d tools starting with %s", tt.goos, tt.wayland, got, tt.n, tt.first)
		}
	}
}
