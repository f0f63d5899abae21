package utilities

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

func DBMultiValuePlaceholders(n int) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(strings.TrimSuffix(strings.Repeat("?,", n), ","))
	b.WriteString("),")
	return strings.TrimSuffix(b.String(), ",")
}

// GenerateNonce returns a 32 char hex challenge token
func GenerateNonce() (string, error) {
	randBytes := make([]byte, 16)
	_, err := rand.Read(randBytes)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(randBytes), nil
}

// DayKey truncates t to UTC midnight and returns it in unix milliseconds.
// Messages sharing a DayKey belong to the same history bucket.
func DayKey(t time.Time) int64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixMilli()
}

// UsernameFromAddress derives a default handle for first-time wallet logins
func UsernameFromAddress(address string) string {
	addr := strings.TrimPrefix(strings.ToLower(address), "0x")
	if len(addr) > 10 {
		addr = addr[:10]
	}
	return "apt_" + addr
}

func ContainsString(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

func SliceToMap(sl []string) map[string]bool {
	m := make(map[string]bool)

	for _, each := range sl {
		m[each] = true
	}

	return m
}

func RemoveString(slice []string, str string) []string {
	out := make([]string, 0, len(slice))
	for _, s := range slice {
		if s == str {
			continue
		}
		out = append(out, s)
	}
	return out
}

func TimeNow() time.Time {
	return time.Now().UTC()
}

func UnixMilli() int64 {
	return TimeNow().UnixMilli()
}
