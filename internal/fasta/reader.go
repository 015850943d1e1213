package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedHeader is returned for an edge header that is not
// ">ID START END [cov=N]".
var ErrMalformedHeader = errors.New("malformed edge header")

// Record is one edge of an assembly graph: its label, the labels of the
// vertices it joins and its full nucleotide sequence. A vertex label
// ending in ' names the conjugate of the unprimed vertex.
type Record struct {
	ID       string
	Start    string
	End      string
	Coverage uint32
	Seq      string
}

var extensions = []string{".fa", ".fasta", ".fna"}

// ParseHeader splits an edge header line (without the leading '>').
func ParseHeader(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || len(fields) > 4 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	rec := Record{ID: fields[0], Start: fields[1], End: fields[2]}
	if len(fields) == 4 {
		v, ok := strings.CutPrefix(fields[3], "cov=")
		if !ok {
			return Record{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		cov, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Record{}, fmt.Errorf("%w: bad coverage %q", ErrMalformedHeader, v)
		}
		rec.Coverage = uint32(cov)
	}
	return rec, nil
}

// Read streams edge records from r to onRecord. Sequence lines are joined;
// blank lines and lines starting with ';' are skipped.
func Read(r io.Reader, onRecord func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var (
		cur     *Record
		seq     strings.Builder
		lineNum int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		cur.Seq = seq.String()
		seq.Reset()
		return onRecord(*cur)
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if header, ok := strings.CutPrefix(line, ">"); ok {
			if err := flush(); err != nil {
				return err
			}
			rec, err := ParseHeader(header)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			cur = &rec
			continue
		}
		if cur == nil {
			return fmt.Errorf("line %d: sequence before first header", lineNum)
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read fasta: %w", err)
	}
	return flush()
}

// ReadFile reads every record in file.
func ReadFile(file string) ([]Record, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open fasta file: %w", err)
	}
	defer f.Close()

	var recs []Record
	err = Read(f, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return recs, nil
}

// ScanDir walks root and streams the records of every FASTA file found,
// skipping hidden directories. A plain file root is read directly.
func ScanDir(root string, onRecord func(Record) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && !hasFastaExt(d.Name()) {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open fasta file: %w", err)
		}
		defer f.Close()
		if err := Read(f, onRecord); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func hasFastaExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
