package misc

import (
	"os"
	"strings"
)

type FileLoader struct {
	filepath string
}

func (this *FileLoader) Init(filepath_ string) {
	this.filepath = filepath_
}

func (this *FileLoader) ReadLines() []string {
	bytes, err := os.ReadFile(this.filepath)
	if err != nil {
		panic(err)
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(string(bytes), "\n") {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}

	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
