package misc

import (
	"errors"
	"fmt"
)

type CommandLineValidator struct {
	command_line_parser *CommandLineParser
}

func (this *CommandLineValidator) Init(command_line_parser *CommandLineParser) {
	this.command_line_parser = command_line_parser
}

func (this *CommandLineValidator) Validate() {
	if this.command_line_parser.IntParameter("verbose") < 0 {
		err := errors.New("verbose < 0")
		panic(err)
	}

	if this.command_line_parser.IntParameter("memory_words") <= 0 {
		err := errors.New("memory_words <= 0")
		panic(err)
	}

	if this.command_line_parser.IntParameter("max_cycles") <= 0 {
		err := errors.New("max_cycles <= 0")
		panic(err)
	}

	start_pc := this.command_line_parser.IntParameter("start_pc")
	if start_pc < 0 {
		err := errors.New("start_pc < 0")
		panic(err)
	}
	if start_pc%4 != 0 {
		err := fmt.Errorf("start_pc %d is not word aligned", start_pc)
		panic(err)
	}
}
