package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

type sample struct {
	DirPath string   `json:"dirPath"`
	Count   int64    `json:"count"`
	Tags    []string `json:"tags"`
	Note    *string  `json:"note"`
	OK      bool     `json:"ok"`
}

type listing []string

func (l listing) WriteText(w io.Writer) error {
	for _, s := range l {
		if _, err := fmt.Fprintln(w, "- "+s); err != nil {
			return err
		}
	}
	return nil
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	v := sample{DirPath: "/a", Count: 1700000000123, Tags: []string{"x", "y"}, OK: true}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:count 1700000000123 :dir-path "/a" :note nil :ok true :tags ["x" "y"]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected edn\nwant %q\ngot  %q", want, got)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []int{1}, "b": map[string]any{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a [\n    1\n  ]\n  :b {}\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty edn\nwant %q\ngot  %q", want, got)
	}
}

func TestWrite_TextUsesTexter(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, listing{"one", "two"}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "- one\n- two\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestWrite_JSONAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{DirPath: "/a"}, "JSON", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `{"dirPath":"/a"`) {
		t.Fatalf("unexpected json %q", buf.String())
	}
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestEDNKeyword(t *testing.T) {
	cases := map[string]string{
		"id":         ":id",
		"gitRemote":  ":git-remote",
		"scope_path": ":scope-path",
		"CreatedAt":  ":created-at",
	}
	for in, want := range cases {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
