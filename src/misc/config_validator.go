package misc

import "fmt"

type ConfigValidator struct {
	config_loader *ConfigLoader
}

func (this *ConfigValidator) Init(config_loader *ConfigLoader) {
	this.config_loader = config_loader
}

func (this *ConfigValidator) Validate() {
	if this.config_loader.MemoryWords() <= 0 {
		err := fmt.Errorf("memory words %d <= 0", this.config_loader.MemoryWords())
		panic(err)
	}

	if this.config_loader.MaxCycles() <= 0 {
		err := fmt.Errorf("max cycles %d <= 0", this.config_loader.MaxCycles())
		panic(err)
	}

	start_pc := this.config_loader.StartPc()
	if start_pc%4 != 0 {
		err := fmt.Errorf("start pc 0x%08x is not word aligned", start_pc)
		panic(err)
	}
	if int(start_pc/4) >= this.config_loader.MemoryWords() {
		err := fmt.Errorf("start pc 0x%08x is outside memory", start_pc)
		panic(err)
	}
}
