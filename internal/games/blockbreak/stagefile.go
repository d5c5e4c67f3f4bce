package blockbreak

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StageFile is the YAML form of a stage, for keeping layouts in version
// control or passing them around as files.
//
//	name: Fortress
//	rows:
//	  - "##########"
//	  - "#X*....*X#"
type StageFile struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows,omitempty"`
	Code string   `yaml:"code,omitempty"`
}

// MarshalStageFile renders a stage as YAML with both its rows and share code.
func MarshalStageFile(name string, s Stage) ([]byte, error) {
	data, err := yaml.Marshal(StageFile{Name: name, Rows: s.Lines(), Code: s.Encode()})
	if err != nil {
		return nil, fmt.Errorf("stage: marshal %q: %w", name, err)
	}
	return data, nil
}

// UnmarshalStageFile reads a stage file. Rows win over the code when both
// are present.
func UnmarshalStageFile(data []byte) (string, Stage, error) {
	var f StageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", Stage{}, fmt.Errorf("stage: parse file: %w", err)
	}
	switch {
	case len(f.Rows) > 0:
		s, err := ParseStage(f.Rows)
		return f.Name, s, err
	case f.Code != "":
		s, err := DecodeStage(f.Code)
		return f.Name, s, err
	default:
		return f.Name, Stage{}, errors.New("stage: file has neither rows nor code")
	}
}
