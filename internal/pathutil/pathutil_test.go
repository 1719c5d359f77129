package pathutil

import "testing"

func TestDir(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"empty", "", ""},
		{"trailing slash", "https://example.com/app/", "https://example.com/app/"},
		{"file in dir", "https://example.com/app/index.html", "https://example.com/app/"},
		{"bare filename", "index.html", ""},
		{"backslash path", `assets\widgets\panel.html`, `assets\widgets\`},
		{"trailing backslash", `assets\widgets\`, `assets\widgets\`},
		{"single slash", "/index.html", "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dir(tc.url); got != tc.want {
				t.Fatalf("Dir(%q)=%q want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		base, ref, want string
	}{
		{"app/", "widget.html", "app/widget.html"},
		{"app/", "", "app/"},
		{"app/", "https://cdn.example.com/x.js", "https://cdn.example.com/x.js"},
		{"app/", "/shared/x.js", "/shared/x.js"},
		{"", "x.js", "x.js"},
	}
	for _, tc := range cases {
		if got := Resolve(tc.base, tc.ref); got != tc.want {
			t.Fatalf("Resolve(%q,%q)=%q want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}
