package store

import "time"

// toTime converts a raw document value into a point in time. The Firestore
// client already decodes stored timestamps into time.Time; the remaining
// cases cover documents written by other tooling. The fallback order is:
// store timestamp, RFC 3339 string, unix milliseconds. Unrecognized values
// do not raise an error; they yield an explicit false so that callers can
// keep an absent field absent instead of inventing a zero date.
func toTime(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v != nil {
			return *v, true
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	case int64:
		return time.UnixMilli(v), true
	case float64:
		return time.UnixMilli(int64(v)), true
	}
	return time.Time{}, false
}
