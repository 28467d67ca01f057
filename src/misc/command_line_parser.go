package misc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type OptionKind int

const (
	INT OptionKind = iota
	STRING
)

type option struct {
	kind          OptionKind
	name          string
	default_value string
	value         string
	help_msg      string
}

// CommandLineParser collects registered --name value options plus bare
// flags (e.g. --help). Option values keep their textual form; typed access
// goes through IntParameter/StringParameter.
type CommandLineParser struct {
	options map[string]*option
	order   []string
	args    map[string]bool
}

func (this *CommandLineParser) Init() {
	this.options = make(map[string]*option)
	this.order = make([]string, 0)
	this.args = make(map[string]bool)
}

func (this *CommandLineParser) AddOption(kind OptionKind, name string, default_value string, help_msg string) {
	if _, ok := this.options[name]; ok {
		err := fmt.Errorf("option %s is registered twice", name)
		panic(err)
	}

	this.options[name] = &option{
		kind:          kind,
		name:          name,
		default_value: default_value,
		value:         default_value,
		help_msg:      help_msg,
	}
	this.order = append(this.order, name)
}

// Parse consumes os.Args-style input. Options are given as --name value or
// --name=value; a --name with no value registered as an option is recorded
// as a bare flag.
func (this *CommandLineParser) Parse(args []string) {
	i := 1
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			err := fmt.Errorf("unexpected positional argument: %s", arg)
			panic(err)
		}
		arg = strings.TrimPrefix(arg, "--")

		if name, value, found := strings.Cut(arg, "="); found {
			this.setValue(name, value)
			i++
			continue
		}

		if _, ok := this.options[arg]; ok {
			if i+1 >= len(args) {
				err := fmt.Errorf("option %s is missing its value", arg)
				panic(err)
			}
			this.setValue(arg, args[i+1])
			i += 2
			continue
		}

		this.args[arg] = true
		i++
	}
}

func (this *CommandLineParser) setValue(name string, value string) {
	opt, ok := this.options[name]
	if !ok {
		err := fmt.Errorf("unknown option: %s", name)
		panic(err)
	}
	opt.value = value
}

func (this *CommandLineParser) IsArgSet(name string) bool {
	return this.args[name]
}

func (this *CommandLineParser) IntParameter(name string) int64 {
	opt, ok := this.options[name]
	if !ok || opt.kind != INT {
		err := fmt.Errorf("%s is not an INT option", name)
		panic(err)
	}

	value, err := strconv.ParseInt(opt.value, 0, 64)
	if err != nil {
		panic(err)
	}
	return value
}

func (this *CommandLineParser) StringParameter(name string) string {
	opt, ok := this.options[name]
	if !ok || opt.kind != STRING {
		err := fmt.Errorf("%s is not a STRING option", name)
		panic(err)
	}
	return opt.value
}

func (this *CommandLineParser) StringifyHelpMsgs() string {
	var builder strings.Builder
	for _, name := range this.order {
		opt := this.options[name]
		builder.WriteString(fmt.Sprintf("--%s (default: %s)\n    %s\n", opt.name, opt.default_value, opt.help_msg))
	}
	return builder.String()
}

func (this *CommandLineParser) StringifyArgs() string {
	names := make([]string, 0, len(this.args))
	for name := range this.args {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

func (this *CommandLineParser) StringifyOptions() string {
	lines := make([]string, 0, len(this.order))
	for _, name := range this.order {
		lines = append(lines, fmt.Sprintf("%s=%s", name, this.options[name].value))
	}
	return strings.Join(lines, "\n")
}
