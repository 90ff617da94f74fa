package generate

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
	"github.com/tidwall/gjson"

	"github.com/randbase/randbase/api"
	"github.com/randbase/randbase/config"
	"github.com/randbase/randbase/modules"
	"github.com/randbase/randbase/rng"
)

// SourceName is reported in every payload as the origin of the randomness.
const SourceName = "fortuna"

// CfgMaxLengthKey is the config key for the per-request sequence length cap.
const CfgMaxLengthKey = "generate/max_length"

var (
	module *modules.Module

	maxLength config.IntOption

	requestsOK     = vm.NewCounter(`randbase_generate_requests_total{status="ok"}`)
	requestsFailed = vm.NewCounter(`randbase_generate_requests_total{status="failed"}`)
	bitsGenerated  = vm.NewCounter(`randbase_generate_bits_total`)
	duration       = vm.NewHistogram(`randbase_generate_duration_seconds`)
)

func init() {
	module = modules.Register("generate", prep, start, nil, "rng", "api")
}

func prep() error {
	err := config.Register(&config.Option{
		Name:           "Maximum Sequence Length",
		Key:            CfgMaxLengthKey,
		Description:    "Defines the largest bit sequence length a single request may ask for.",
		OptType:        config.OptTypeInt,
		ExpertiseLevel: config.ExpertiseLevelUser,
		DefaultValue:   100000,
	})
	if err != nil {
		return err
	}
	maxLength = config.GetAsInt(CfgMaxLengthKey, 100000)

	if err := api.RegisterEndpoint(api.Endpoint{
		Path:        "generate",
		MimeType:    api.MimeTypeJSON,
		StructFunc:  handleGenerate,
		Name:        "Generate Random Bits",
		Description: "Generates a random bit sequence of the requested length and returns it with its statistics.",
	}); err != nil {
		return err
	}

	return registerStream()
}

func start() error {
	return nil
}

// Payload is the response to a generation request.
type Payload struct {
	Bits       []int   `json:"bits"`
	Length     int     `json:"length"`
	Zeros      int     `json:"zeros"`
	Ones       int     `json:"ones"`
	Entropy    float64 `json:"entropy"`
	DurationMS float64 `json:"duration_ms"`
	Timestamp  string  `json:"ts"`
	Source     string  `json:"source"`
}

// ErrUnavailable is returned when the random source cannot currently serve.
var ErrUnavailable = errors.New("random source is not available")

func handleGenerate(ar *api.Request) (interface{}, error) {
	length, err := parseLength(ar)
	if err != nil {
		requestsFailed.Inc()
		return nil, api.ErrorWithStatus(err, http.StatusBadRequest)
	}

	payload, err := Sequence(length)
	if err != nil {
		requestsFailed.Inc()
		if errors.Is(err, rng.ErrNotReady) {
			return nil, api.ErrorWithStatus(ErrUnavailable, http.StatusServiceUnavailable)
		}
		return nil, err
	}

	requestsOK.Inc()
	return payload, nil
}

// Sequence generates a random bit sequence of the given length and shapes it into a payload with its statistics. The length must already be validated.
func Sequence(length int) (*Payload, error) {
	start := time.Now()
	bits, err := rng.Bits(length)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	duration.UpdateDuration(start)
	bitsGenerated.Add(length)

	zeros, ones := Counts(bits)
	return &Payload{
		Bits:       toInts(bits),
		Length:     length,
		Zeros:      zeros,
		Ones:       ones,
		Entropy:    ShannonEntropy(zeros, ones),
		DurationMS: float64(elapsed.Microseconds()) / 1000,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Source:     SourceName,
	}, nil
}

// parseLength extracts and validates the requested sequence length. The query parameter wins over a json body field.
func parseLength(ar *api.Request) (int, error) {
	raw := ar.Request.URL.Query().Get("length")

	if raw == "" && len(ar.InputData) > 0 {
		field := gjson.GetBytes(ar.InputData, "length")
		switch {
		case !field.Exists():
			// not present, fall through to the missing check
		case field.Type != gjson.Number:
			return 0, errMalformedLength(field.String())
		default:
			raw = field.Raw
		}
	}

	return checkLength(raw)
}

// checkLength validates the raw length value against the configured maximum.
func checkLength(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("length parameter is missing")
	}

	length, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errMalformedLength(raw)
	}
	if length <= 0 {
		return 0, fmt.Errorf("length must be positive, got %d", length)
	}
	if max := maxLength(); int64(length) > max {
		return 0, fmt.Errorf("length %d exceeds the maximum of %d", length, max)
	}

	return length, nil
}

func errMalformedLength(raw string) error {
	return fmt.Errorf("length must be an integer, got %q", raw)
}

func toInts(bits []uint8) []int {
	ints := make([]int, len(bits))
	for i, b := range bits {
		ints[i] = int(b)
	}
	return ints
}
