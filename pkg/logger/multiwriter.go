package logger

import (
	"io"
	"os"
)

// newMultiWriter дублирует вывод в файл и stdout
func newMultiWriter(f *os.File) io.Writer {
	return io.MultiWriter(f, os.Stdout)
}
