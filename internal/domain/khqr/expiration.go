package khqr

import "time"

const DefaultExpirationMinutes = 10

// ExpirationMillis returns now plus the given minutes as epoch milliseconds.
func ExpirationMillis(now time.Time, minutes int) int64 {
	return now.Add(time.Duration(minutes) * time.Minute).UnixMilli()
}

func ComputeExpiration(minutes int) int64 {
	return ExpirationMillis(time.Now(), minutes)
}
