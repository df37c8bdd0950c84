package textio

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestDecodeLadder(t *testing.T) {
	cases := []struct {
		name    string
		data    []byte
		want    []string
		decoder string
	}{
		{
			name:    "utf-8",
			data:    []byte("Time(min) Temperature\n0.5 20\n"),
			want:    []string{"Time(min) Temperature", "0.5 20"},
			decoder: "utf-8",
		},
		{
			name:    "utf-8 bom",
			data:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("Secs\n30\n")...),
			want:    []string{"Secs", "30"},
			decoder: "utf-8-bom",
		},
		{
			name:    "gbk",
			data:    append([]byte{0xCE, 0xC2, 0xB6, 0xC8}, []byte(" Time Temperature\n")...),
			want:    []string{"温度 Time Temperature"},
			decoder: "gbk",
		},
		{
			name:    "latin-1",
			data:    []byte("caf\xe9\n1.5 30\n"),
			want:    []string{"café", "1.5 30"},
			decoder: "latin-1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, name := Decode(tc.data)
			if name != tc.decoder {
				t.Fatalf("expected decoder %s, got %s", tc.decoder, name)
			}
			if got := splitLines(text); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDecodeLinesLineEndings(t *testing.T) {
	got := DecodeLines([]byte("a\r\nb\rc\n\nd"))
	want := []string{"a", "b", "c", "", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if lines := DecodeLines(nil); len(lines) != 0 {
		t.Fatalf("empty input should yield no lines, got %q", lines)
	}
}

func TestReadLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/t1.txt", []byte("Secs\n30\n90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(fs, "/data/t1.txt")
	if err != nil {
		t.Fatalf("read should succeed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"Secs", "30", "90"}) {
		t.Fatalf("unexpected lines %q", lines)
	}

	if _, err := ReadLines(fs, "/data/missing.txt"); err == nil {
		t.Fatal("missing file should return an error")
	}
}
