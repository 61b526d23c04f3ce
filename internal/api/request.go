package api

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
)

// ErrInvalidRequest marks request envelopes that cannot be decoded.
var ErrInvalidRequest = errors.New("invalid request")

// DecodeSolveRequest reads a solve request. The instance is either the
// whole document or its "instance" member; the envelope may also carry
// "time_limit" (Go duration or seconds), "time_limit_seconds" and
// "include_unselected".
func DecodeSolveRequest(raw []byte) (SolveRequest, error) {
	if !gjson.ValidBytes(raw) {
		return SolveRequest{}, fmt.Errorf("%w: malformed JSON", ErrInvalidRequest)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return SolveRequest{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRequest)
	}

	doc := root
	if inner := root.Get("instance"); inner.Exists() {
		doc = inner
	}
	instances, err := instance.Decode([]byte(doc.Raw))
	if err != nil {
		return SolveRequest{}, err
	}
	if len(instances) != 1 {
		return SolveRequest{}, fmt.Errorf("%w: expected one instance, got %d", ErrInvalidRequest, len(instances))
	}

	req := SolveRequest{
		Instance:          instances[0],
		IncludeUnselected: root.Get("include_unselected").Bool(),
	}
	req.TimeLimit, err = decodeTimeLimit(root)
	if err != nil {
		return SolveRequest{}, err
	}
	return req, nil
}

func decodeTimeLimit(root gjson.Result) (time.Duration, error) {
	if v := root.Get("time_limit_seconds"); v.Exists() {
		return secondsLimit(v.Float())
	}
	v := root.Get("time_limit")
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return secondsLimit(v.Float())
	case gjson.String:
		return ParseTimeLimit(v.String())
	default:
		return 0, fmt.Errorf("%w: time_limit must be a number or duration string", ErrInvalidRequest)
	}
}

// ParseTimeLimit reads a Go duration ("90s") or a number of seconds.
func ParseTimeLimit(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("%w: time limit %q", ErrInvalidRequest, s)
		}
		return secondsLimit(secs)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative time limit %q", ErrInvalidRequest, s)
	}
	return d, nil
}

// maxLimitSeconds is the largest number of seconds a time.Duration holds.
const maxLimitSeconds = float64(math.MaxInt64) / float64(time.Second)

func secondsLimit(secs float64) (time.Duration, error) {
	switch {
	case math.IsNaN(secs):
		return 0, fmt.Errorf("%w: time limit is not a number", ErrInvalidRequest)
	case secs < 0:
		return 0, fmt.Errorf("%w: negative time limit %g", ErrInvalidRequest, secs)
	case secs >= maxLimitSeconds:
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(secs * float64(time.Second)), nil
}
