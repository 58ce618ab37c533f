package sniff_test

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	sniff "github.com/hashicorp/go-sniff"
)

func TestFormatString(t *testing.T) {
	f := sniff.Format{Extension: "pdf", MediaType: "application/pdf"}
	if got, want := f.String(), "pdf (application/pdf)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := sniff.SupportedExtensions()
	if !sort.StringsAreSorted(exts) {
		t.Errorf("SupportedExtensions() is not sorted: %v", exts)
	}

	seen := map[string]bool{}
	for _, ext := range exts {
		if seen[ext] {
			t.Errorf("SupportedExtensions() contains %q twice", ext)
		}
		seen[ext] = true
	}
	for _, want := range []string{"ai", "bmp", "pdf", "pub", "smil", "tar.gz", "xml"} {
		if !seen[want] {
			t.Errorf("SupportedExtensions() does not contain %q", want)
		}
	}
}

func TestSupportedMediaTypes(t *testing.T) {
	types := sniff.SupportedMediaTypes()
	if !sort.StringsAreSorted(types) {
		t.Errorf("SupportedMediaTypes() is not sorted: %v", types)
	}
	found := false
	for _, mt := range types {
		if mt == "application/x-mspublisher" {
			found = true
		}
	}
	if !found {
		t.Errorf("SupportedMediaTypes() does not contain application/x-mspublisher")
	}

	// doc files written by Word 6 and Word 97 share one media type
	count := 0
	for _, mt := range types {
		if mt == "application/msword" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("application/msword listed %d times, want 1", count)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *sniff.Error
		want string
	}{
		{
			name: "detector error",
			err:  &sniff.Error{Phase: sniff.PhaseDetection, Detector: 3, Err: errors.New("boom")},
			want: "detection: detector 3: boom",
		},
		{
			name: "adapter error",
			err:  &sniff.Error{Phase: sniff.PhaseAdapter, Detector: -1, Err: fmt.Errorf("cannot open file: %w", errors.New("boom"))},
			want: "adapter: cannot open file: boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}
