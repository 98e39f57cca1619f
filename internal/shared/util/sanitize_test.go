package util

import "testing"

func TestSanitizeFileNameRejectsTraversal(t *testing.T) {
	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestSanitizeFileNameReplacesSeparators(t *testing.T) {
	got, err := SanitizeFileName("notes/week one\\final.txt")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "notes_week one_final.txt" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
}

func TestFileExt(t *testing.T) {
	cases := map[string]string{
		"report.PDF":     ".pdf",
		"notes.tar.gz":   ".gz",
		"README":         "",
		"archive.EPUB":   ".epub",
		"data.v2.csv":    ".csv",
		"trailing.dot.":  ".",
		"slides.pptx":    ".pptx",
		"styles.CSS":     ".css",
	}
	for name, want := range cases {
		if got := FileExt(name); got != want {
			t.Errorf("FileExt(%q) = %q, want %q", name, got, want)
		}
	}
}
