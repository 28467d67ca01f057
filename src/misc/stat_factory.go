package misc

import (
	"fmt"
	"sort"
)

type StatFactory struct {
	prefix string
	stats  map[string]int64
}

func (this *StatFactory) Init(prefix string) {
	this.prefix = prefix
	this.stats = make(map[string]int64)
}

func (this *StatFactory) Increment(name string, value int64) {
	this.stats[name] += value
}

func (this *StatFactory) Set(name string, value int64) {
	this.stats[name] = value
}

func (this *StatFactory) Value(name string) int64 {
	return this.stats[name]
}

func (this *StatFactory) ToLines() []string {
	names := make([]string, 0, len(this.stats))
	for name := range this.stats {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s_%s: %d", this.prefix, name, this.stats[name]))
	}
	return lines
}
