package api

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// LanguageID identifies a registered toolchain. The ordinal value is the
// wire representation; reordering or removing entries is a breaking
// protocol change.
type LanguageID uint8

const (
	LangPython3 LanguageID = iota
	LangC
	LangCpp
	LangJava
	LangRust

	langCount
)

// Languages lists every registered id in wire order.
func Languages() []LanguageID {
	return []LanguageID{LangPython3, LangC, LangCpp, LangJava, LangRust}
}

func (l LanguageID) Valid() bool {
	return l < langCount
}

func (l LanguageID) String() string {
	switch l {
	case LangPython3:
		return "python3"
	case LangC:
		return "c"
	case LangCpp:
		return "c++"
	case LangJava:
		return "java"
	case LangRust:
		return "rust"
	}
	return fmt.Sprintf("language(%d)", uint8(l))
}

// Command tags.
const (
	CmdTest           = "Test"
	CmdVersions       = "Versions"
	CmdValidateJudger = "ValidateJudger"
)

// Command is the single request this process serves, decoded from a CBOR
// map. Which fields are meaningful depends on the tag in Name.
type Command struct {
	Name string `cbor:"command"`

	Language      LanguageID `cbor:"language"`
	TimeLimitMs   uint64     `cbor:"time_limit"`
	MemoryLimitMB uint64     `cbor:"memory_limit"`
	Code          string     `cbor:"code"`
	Tests         string     `cbor:"tests"`

	// CustomJudger replaces the default output comparator when non-empty.
	CustomJudger string `cbor:"custom_judger"`

	// Judger is the source to check for the ValidateJudger command.
	Judger string `cbor:"judger"`
}

// DecodeCommand decodes and validates one serialized Command.
func DecodeCommand(data []byte) (*Command, error) {
	var c Command
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode command: %w", err)
	}
	switch c.Name {
	case CmdTest:
		if !c.Language.Valid() {
			return nil, fmt.Errorf("command references unknown language id %d", c.Language)
		}
	case CmdVersions, CmdValidateJudger:
	default:
		return nil, fmt.Errorf("unknown command %q", c.Name)
	}
	return &c, nil
}
