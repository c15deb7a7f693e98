package service

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/maheshrc27/content-planner/internal/transfer"
	"github.com/maheshrc27/content-planner/pkg/utils"
)

const (
	fieldTitle           = "title"
	fieldContent         = "content"
	fieldPlatform        = "platform"
	fieldStatus          = "status"
	fieldScheduledTime   = "scheduled_time"
	fieldEngagementScore = "engagement_score"
	fieldImageURL        = "image_url"
)

const (
	msgInvalidInteger  = "a valid integer is required"
	msgInvalidString   = "not a valid string"
	msgInvalidDateTime = "datetime has wrong format, use one of: YYYY-MM-DDThh:mm, YYYY-MM-DD hh:mm, DD-MM-YYYY hh:mm, DD/MM/YYYY hh:mm, ISO-8601"
)

// PostNormalizer cleans up ambiguous client input before validation.
// Normalize is pure and idempotent.
type PostNormalizer struct {
	loc *time.Location
}

func NewPostNormalizer(loc *time.Location) *PostNormalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &PostNormalizer{loc: loc}
}

func (n *PostNormalizer) Normalize(raw transfer.Payload) (transfer.Payload, error) {
	out := make(transfer.Payload, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	verr := &ValidationError{}

	if v, ok := out[fieldScheduledTime]; ok {
		t, err := n.normalizeScheduledTime(v)
		if err != nil {
			verr.Add(fieldScheduledTime, msgInvalidDateTime)
		} else if t == nil {
			out[fieldScheduledTime] = nil
		} else {
			out[fieldScheduledTime] = *t
		}
	}

	if v, ok := out[fieldEngagementScore]; ok {
		score, err := coerceEngagementScore(v)
		if err != nil {
			verr.Add(fieldEngagementScore, msgInvalidInteger)
		} else {
			out[fieldEngagementScore] = score
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *PostNormalizer) normalizeScheduledTime(v any) (*time.Time, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &val, nil
	case *time.Time:
		return val, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		t, err := utils.ParseDateTime(val, n.loc)
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, utils.ErrUnknownDateTimeFormat
	}
}

var errNotInteger = errors.New("not an integer")

func coerceEngagementScore(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		return integralFloat(val)
	case json.Number:
		return parseDecimalInteger(val.String())
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		return parseDecimalInteger(s)
	default:
		return 0, errNotInteger
	}
}

// parseDecimalInteger accepts an optionally signed run of digits, optionally
// followed by a fraction of zeros ("12", "-3", "12.00"). Exponents are
// rejected.
func parseDecimalInteger(s string) (int64, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && strings.Trim(frac, "0") != "" {
		return 0, errNotInteger
	}

	digits := strings.TrimLeft(whole, "+-")
	if digits == "" || len(whole)-len(digits) > 1 {
		return 0, errNotInteger
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, errNotInteger
		}
	}

	return strconv.ParseInt(whole, 10, 64)
}

func integralFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, strconv.ErrRange
	}
	return int64(f), nil
}

// DecodePostInput types a normalized payload. Unknown keys, including the
// generated id and created_at, are ignored.
func DecodePostInput(p transfer.Payload) (*transfer.PostInput, error) {
	in := &transfer.PostInput{}
	verr := &ValidationError{}

	decodeString(p, fieldTitle, &in.Title, true, verr)
	decodeString(p, fieldContent, &in.Content, true, verr)
	decodeString(p, fieldPlatform, &in.Platform, true, verr)
	decodeString(p, fieldStatus, &in.Status, false, verr)
	decodeString(p, fieldImageURL, &in.ImageURL, false, verr)

	if v, ok := p[fieldScheduledTime]; ok {
		switch val := v.(type) {
		case nil:
			in.ScheduledTime = transfer.Null[time.Time]()
		case time.Time:
			in.ScheduledTime = transfer.Some(val)
		default:
			verr.Add(fieldScheduledTime, msgInvalidDateTime)
		}
	}

	if v, ok := p[fieldEngagementScore]; ok {
		switch val := v.(type) {
		case nil:
			in.EngagementScore = transfer.Null[int64]()
		case int64:
			in.EngagementScore = transfer.Some(val)
		default:
			verr.Add(fieldEngagementScore, msgInvalidInteger)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// decodeString types key as a string. With trim set, surrounding whitespace
// is removed so a blank value fails the required rule.
func decodeString(p transfer.Payload, key string, dst *transfer.Optional[string], trim bool, verr *ValidationError) {
	v, ok := p[key]
	if !ok {
		return
	}
	switch val := v.(type) {
	case nil:
		*dst = transfer.Null[string]()
	case string:
		if trim {
			val = strings.TrimSpace(val)
		}
		*dst = transfer.Some(val)
	default:
		verr.Add(key, msgInvalidString)
	}
}
