package fasta

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const edges = `; toy graph
>e1 a b cov=12
ACGTA
CG

>e2 b c'
GTATT
`

func TestRead(t *testing.T) {
	var recs []Record
	err := Read(strings.NewReader(edges), func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{ID: "e1", Start: "a", End: "b", Coverage: 12, Seq: "ACGTACG"},
		{ID: "e2", Start: "b", End: "c'", Seq: "GTATT"},
	}, recs)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Missing vertices", ">e1\nACGT\n"},
		{"Bad coverage", ">e1 a b cov=x\nACGT\n"},
		{"Unknown attribute", ">e1 a b len=4\nACGT\n"},
		{"Sequence before header", "ACGT\n>e1 a b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Read(strings.NewReader(tt.input), func(Record) error { return nil })
			assert.Error(t, err)
		})
	}

	_, err := ParseHeader("e1 a")
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "one.fa"), []byte(edges), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "two.fasta"), []byte(">e3 c d\nTTTT\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not fasta"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cache", "x.fa"), []byte("garbage"), 0o644))

	var ids []string
	err := ScanDir(root, func(r Record) error {
		ids = append(ids, r.ID)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e1", "e2", "e3"}, ids)

	recs, err := ReadFile(filepath.Join(root, "nested", "two.fasta"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "TTTT", recs[0].Seq)
}

func TestWriter_Wraps(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 4)
	require.NoError(t, w.Write("NODE_1", "ACGTACGTAC"))
	require.NoError(t, w.Write("empty", ""))
	require.NoError(t, w.Flush())

	assert.Equal(t, ">NODE_1\nACGT\nACGT\nAC\n>empty\n", buf.String())
}
