package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdreview/pkg/langdetect"
)

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info string
		want string
	}{
		{"canonical name", "go", "go"},
		{"alias", "golang", "go"},
		{"python extension", "py", "python"},
		{"ruby extension", "rb", "ruby"},
		{"extra fence attributes ignored", "go linenums", "go"},
		{"shell normalized", "sh", "bash"},
		{"unknown passed through lowercased", "MyDSL", "mydsl"},
		{"empty", "", "text"},
		{"whitespace only", "   ", "text"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.FromInfo(testCase.info)
			if got != testCase.want {
				t.Errorf("FromInfo(%q) = %q, want %q", testCase.info, got, testCase.want)
			}
		})
	}
}

func TestDetect_Shebang(t *testing.T) {
	t.Parallel()

	got := langdetect.Detect([]byte("#!/bin/bash\necho hi\n"))
	if got != "bash" {
		t.Errorf("Detect shebang = %q, want bash", got)
	}
}

func TestDetect_Empty(t *testing.T) {
	t.Parallel()

	if got := langdetect.Detect(nil); got != "text" {
		t.Errorf("Detect(nil) = %q, want text", got)
	}
}

func TestDetect_AlwaysReturnsSomething(t *testing.T) {
	t.Parallel()

	if got := langdetect.Detect([]byte("random prose with no code")); got == "" {
		t.Error("Detect returned empty language")
	}
}
