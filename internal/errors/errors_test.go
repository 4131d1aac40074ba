package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "site url missing")
	want := "config (fatal): site url missing"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}

	cause := stderrors.New("open config.yaml: no such file")
	wrapped := Wrap(cause, CategoryConfig, SeverityFatal, "load configuration")
	if wrapped.Unwrap() != cause {
		t.Fatalf("Unwrap should return the cause")
	}
	if !stderrors.Is(wrapped, cause) {
		t.Fatalf("errors.Is should see through BlogForgeError")
	}
}

func TestCategoryHelpers(t *testing.T) {
	err := NewSitemapError("site url is not absolute", nil)
	if !IsCategory(err, CategorySitemap) {
		t.Fatalf("expected sitemap category")
	}
	if IsCategory(err, CategoryConfig) {
		t.Fatalf("unexpected config category")
	}
	if GetCategory(stderrors.New("plain")) != "" {
		t.Fatalf("plain errors have no category")
	}
}

func TestWithContext(t *testing.T) {
	err := NewContentError("malformed frontmatter", nil).
		WithContext("file", "posts/hello.md")
	if err.Context["file"] != "posts/hello.md" {
		t.Fatalf("context not recorded")
	}
}

func TestExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{New(CategoryValidation, SeverityFatal, "x"), 2},
		{New(CategoryConfig, SeverityFatal, "x"), 7},
		{New(CategoryContent, SeverityFatal, "x"), 11},
		{New(CategoryRender, SeverityFatal, "x"), 11},
		{New(CategorySitemap, SeverityFatal, "x"), 11},
		{New(CategoryDaemon, SeverityError, "x"), 12},
		{New(CategoryInternal, SeverityFatal, "x"), 10},
	}
	for _, c := range cases {
		if got := a.ExitCodeFor(c.err); got != c.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", c.err, got, c.code)
		}
	}
}

func TestFormatErrorVerbosity(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "base path must start with '/'")

	terse := NewCLIErrorAdapter(false, nil).FormatError(err)
	if terse != "base path must start with '/'" {
		t.Fatalf("terse format: got %q", terse)
	}

	verbose := NewCLIErrorAdapter(true, nil).FormatError(err)
	if verbose != err.Error() {
		t.Fatalf("verbose format should be full error, got %q", verbose)
	}
}
