package config

// Taskfile represents the structure of the mk.yaml taskfile.
type Taskfile struct {
	Version string               `yaml:"version"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents a single target definition in the taskfile.
type TargetDTO struct {
	Run     []string          `yaml:"run"`
	Needs   []string          `yaml:"needs"`
	Outputs []string          `yaml:"outputs"`
	Env     map[string]string `yaml:"env"`
	Dir     string            `yaml:"dir"`
	Phony   *bool             `yaml:"phony"`
}
