package pagerag

import (
	"math"
	"strconv"
	"strings"
)

// Default request parameters, used when the user leaves a field empty or
// zero.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTemperature  = 0.0
)

// Temperature bounds accepted by the answer generator.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// User-facing validation messages.
const (
	MsgURLRequired      = "Please enter a web page URL first."
	MsgQuestionRequired = "Please enter a question."
	MsgChunkSize        = "Chunk Size must be greater than 0."
	MsgChunkOverlapMin  = "Chunk Overlap must be 0 or greater."
	MsgChunkOverlapSize = "Chunk Overlap must be smaller than Chunk Size."
	MsgTemperature      = "Temperature must be between 0 and 2."
)

// Request is a single question about a web page as submitted by a user.
// Numeric fields carry raw input (form values, flags); empty or zero values
// fall back to the defaults.
type Request struct {
	Question     string
	URL          string
	ChunkSize    string
	ChunkOverlap string
	Temperature  string
}

// Params holds the validated parameters of a request.
type Params struct {
	URL          string
	ChunkSize    int
	ChunkOverlap int
	Temperature  float64
}

// ParseParams converts raw request fields into Params. Empty or zero chunk
// fields take their defaults, so a chunk overlap of 0 becomes 200. It does
// not validate ranges; call Validate for that.
func ParseParams(rawURL, chunkSize, chunkOverlap, temperature string) (Params, error) {
	p := Params{
		URL:          rawURL,
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Temperature:  DefaultTemperature,
	}

	if s := strings.TrimSpace(chunkSize); s != "" {
		n, err := parseInt(s)
		if err != nil {
			return Params{}, Errorf(EINVALID, "Chunk Size must be a number.")
		}
		if n != 0 {
			p.ChunkSize = n
		}
	}
	if s := strings.TrimSpace(chunkOverlap); s != "" {
		n, err := parseInt(s)
		if err != nil {
			return Params{}, Errorf(EINVALID, "Chunk Overlap must be a number.")
		}
		if n != 0 {
			p.ChunkOverlap = n
		}
	}
	if s := strings.TrimSpace(temperature); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Params{}, Errorf(EINVALID, "Temperature must be a number.")
		}
		p.Temperature = f
	}

	return p, nil
}

// parseInt accepts integral input, including number widgets that submit
// values such as "1000.0". Fractions and values outside the int range are
// rejected.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, Errorf(EINVALID, "not an integer: %s", s)
	}
	return int(f), nil
}

// Validate returns an EINVALID error describing the first invalid field.
// The URL is checked for presence only; see NormalizeURL.
func (p Params) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return Errorf(EINVALID, MsgURLRequired)
	}
	if p.ChunkSize <= 0 {
		return Errorf(EINVALID, MsgChunkSize)
	}
	if p.ChunkOverlap < 0 {
		return Errorf(EINVALID, MsgChunkOverlapMin)
	}
	if p.ChunkOverlap >= p.ChunkSize {
		return Errorf(EINVALID, MsgChunkOverlapSize)
	}
	if !(p.Temperature >= MinTemperature && p.Temperature <= MaxTemperature) {
		return Errorf(EINVALID, MsgTemperature)
	}
	return nil
}

// Key derives the IndexKey for p. The URL is normalized first.
func (p Params) Key() (IndexKey, error) {
	u, err := NormalizeURL(p.URL)
	if err != nil {
		return IndexKey{}, err
	}
	return IndexKey{URL: u, ChunkSize: p.ChunkSize, ChunkOverlap: p.ChunkOverlap}, nil
}

// NormalizeURL trims whitespace and prepends https:// when the URL has no
// http:// or https:// scheme.
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", Errorf(EINVALID, "URL is required")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u, nil
}
