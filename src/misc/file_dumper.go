package misc

import (
	"os"
	"path/filepath"
	"strings"
)

type FileDumper struct {
	filepath string
}

func (this *FileDumper) Init(filepath_ string) {
	this.filepath = filepath_
}

func (this *FileDumper) WriteLines(lines []string) {
	dirpath := filepath.Dir(this.filepath)
	if dirpath != "" && dirpath != "." {
		if err := os.MkdirAll(dirpath, 0o755); err != nil {
			panic(err)
		}
	}

	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}

	if err := os.WriteFile(this.filepath, []byte(content), 0o644); err != nil {
		panic(err)
	}
}
