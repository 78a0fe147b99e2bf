package constants

import (
	"os"
	"strconv"
)

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetOutDir() string {
	return envStr("USTKIT_OUT_DIR", "./out")
}

func GetServeAddr() string {
	return envStr("USTKIT_ADDR", ":8080")
}

func GetDynamoEndpoint() string {
	return envStr("USTKIT_DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return envStr("USTKIT_DYNAMO_REGION", "localhost")
}

// GetThinStride is the default pitch point thinning stride for NN imports.
// 0 keeps every point.
func GetThinStride() int {
	n := envInt("USTKIT_THIN_STRIDE", 0)
	if n < 0 {
		return 0
	}
	return n
}

const CatalogTable = "ustkit-catalog"

// Tempo values above MaxTempo in a [#SETTING] block are replaced with
// DefaultTempo.
const (
	DefaultTempo = 120
	MaxTempo     = 300
)

// Ticks per quarter note in project files.
const TicksPerBeat = 480

// NN files count time in 1/8 of a quarter note; project files in 1/480.
const NNTickScale = 60

// NN pitch index 0 is NoteNum 83 and counts downward.
const NNPitchBase = 83

const (
	RestLyric   = "R"
	RestNoteNum = 60
)

// NN pitch samples are in tenths of a semitone around 50.
const (
	NNPitchCenter = 50
	NNPitchUnit   = 10
)
