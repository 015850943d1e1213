package fasta

import (
	"bufio"
	"io"
)

const DefaultLineWidth = 60

// Writer emits FASTA records with sequence lines wrapped at a fixed width.
type Writer struct {
	w     *bufio.Writer
	width int
}

func NewWriter(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultLineWidth
	}
	return &Writer{w: bufio.NewWriter(w), width: width}
}

func (fw *Writer) Write(name, seq string) error {
	if err := fw.w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := fw.w.WriteString(name); err != nil {
		return err
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return err
	}
	for len(seq) > 0 {
		n := min(fw.width, len(seq))
		if _, err := fw.w.WriteString(seq[:n]); err != nil {
			return err
		}
		if err := fw.w.WriteByte('\n'); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

func (fw *Writer) Flush() error {
	return fw.w.Flush()
}
