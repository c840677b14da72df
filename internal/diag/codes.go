package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Semantic: function namespace
	SemaInfo                Code = 3000
	SemaError               Code = 3001
	SemaInvalidFunctionName Code = 3002
	SemaKeywordConflict     Code = 3003
	SemaDuplicateFunction   Code = 3004
	SemaNoMatchingFunction  Code = 3005
	SemaUnknownFunction     Code = 3006
	SemaUnknownType         Code = 3007

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Project / units
	ProjInfo        Code = 5000
	ProjInvalidUnit Code = 5001
	ProjNoUnits     Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	SemaInfo:                "Semantic information",
	SemaError:               "Semantic error",
	SemaInvalidFunctionName: "Invalid function name",
	SemaKeywordConflict:     "Function name is a reserved keyword",
	SemaDuplicateFunction:   "Duplicate function",
	SemaNoMatchingFunction:  "No matching function for call",
	SemaUnknownFunction:     "Unknown function",
	SemaUnknownType:         "Unknown type",
	IOLoadFileError:         "Cannot load file",
	IOCacheError:            "Result cache error",
	ProjInfo:                "Project information",
	ProjInvalidUnit:         "Invalid compilation unit",
	ProjNoUnits:             "No compilation units",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
