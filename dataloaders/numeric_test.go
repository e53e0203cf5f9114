package dataloaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestReadSeq(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in   string
		want []float64
	}
	cases := []tc{
		{"1\n2\n3\n", []float64{1, 2, 3}},
		{"1, 2.5, -3\n", []float64{1, 2.5, -3}},
		{"1 2\t3\n", []float64{1, 2, 3}},
		{"# header comment\n4\n\n5\n", []float64{4, 5}},
		{"1\nNA\n2\nn/a\nnull\n-\n3\n", []float64{1, 2, 3}},
		{"1e3, 2e-2\n", []float64{1000, 0.02}},
	}
	for _, c := range cases {
		got, err := ReadSeq(strings.NewReader(c.in))
		is.NoErr(err)
		is.Equal(got, c.want)
	}
}

func TestReadSeqDropsNonFinite(t *testing.T) {
	is := is.New(t)
	got, err := ReadSeq(strings.NewReader("1\n+Inf\n-Inf\n2\n"))
	is.NoErr(err)
	is.Equal(got, []float64{1, 2})
}

func TestReadSeqErrors(t *testing.T) {
	is := is.New(t)
	_, err := ReadSeq(strings.NewReader("1\nbogus\n2\n"))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "bogus"))

	_, err = ReadSeq(strings.NewReader("# nothing here\nNA\n"))
	is.True(errors.Is(err, ErrNoData))
}

func TestLoadGroups(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.csv")
	p2 := filepath.Join(dir, "b.csv")
	is.NoErr(os.WriteFile(p1, []byte("1,2,3\n"), 0o644))
	is.NoErr(os.WriteFile(p2, []byte("4\n5\n"), 0o644))

	groups, err := LoadGroups(p1, p2)
	is.NoErr(err)
	is.Equal(groups, [][]float64{{1, 2, 3}, {4, 5}})

	_, err = LoadGroups(p1, filepath.Join(dir, "missing.csv"))
	is.True(err != nil)
}
