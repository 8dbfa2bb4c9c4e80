package detection

import "github.com/banshee-data/sensorview/internal/common"

// DataQualifier says how far a cycle's output can be trusted.
type DataQualifier int32

const (
	DataQualifierUnknown DataQualifier = iota
	DataQualifierOther
	DataQualifierAvailable
	DataQualifierAvailableReduced
	DataQualifierNotAvailable
	DataQualifierBlindness
	DataQualifierTemporaryAvailable
	DataQualifierInvalid
)

var dataQualifiers = common.NewEnumTable[DataQualifier]("data_qualifier",
	"UNKNOWN", "OTHER", "AVAILABLE", "AVAILABLE_REDUCED",
	"NOT_AVAILABLE", "BLINDNESS", "TEMPORARY_AVAILABLE", "INVALID",
)

func (q DataQualifier) String() string { return dataQualifiers.Name(q) }

// IsValid reports whether q is a member of the closed set.
func (q DataQualifier) IsValid() bool { return dataQualifiers.IsValid(q) }

// ParseDataQualifier accepts a canonical name or a decimal value.
func ParseDataQualifier(s string) (DataQualifier, error) { return dataQualifiers.Parse(s) }

func (q DataQualifier) MarshalText() ([]byte, error) { return []byte(dataQualifiers.Text(q)), nil }

func (q *DataQualifier) UnmarshalJSON(data []byte) error {
	return dataQualifiers.UnmarshalJSON(data, q)
}

// Classification is the coarse class of a logical detection.
type Classification int32

const (
	ClassificationUnknown Classification = iota
	ClassificationOther
	// ClassificationInvalid marks a detection that must be disregarded.
	ClassificationInvalid
	// ClassificationClutter is a detection from the environment rather than
	// a relevant object (rain, spray, multipath ghosts).
	ClassificationClutter
	// ClassificationOverdrivable can be driven over (manhole cover, road
	// marking).
	ClassificationOverdrivable
	// ClassificationUnderdrivable can be driven under (bridge, gantry).
	ClassificationUnderdrivable
)

var classifications = common.NewEnumTable[Classification]("classification",
	"UNKNOWN", "OTHER", "INVALID", "CLUTTER", "OVERDRIVABLE", "UNDERDRIVABLE",
)

func (c Classification) String() string { return classifications.Name(c) }

// IsValid reports whether c is a member of the closed set.
func (c Classification) IsValid() bool { return classifications.IsValid(c) }

// ParseClassification accepts a canonical name or a decimal value.
func ParseClassification(s string) (Classification, error) { return classifications.Parse(s) }

func (c Classification) MarshalText() ([]byte, error) { return []byte(classifications.Text(c)), nil }

func (c *Classification) UnmarshalJSON(data []byte) error {
	return classifications.UnmarshalJSON(data, c)
}
