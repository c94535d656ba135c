package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"mixed runs", "Go  1.25 --- released", "go-1-25-released"},
		{"unicode letters kept", "Café München", "café-münchen"},
		{"cyrillic", "Привет мир", "привет-мир"},
		{"leading and trailing junk", "  ...Breaking News...  ", "breaking-news"},
		{"empty title", "", "article"},
		{"fully non-alphanumeric", "!!! ???", "article"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.title); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
