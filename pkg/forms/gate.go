package forms

import "net/url"

// Gate is the classification of a POST payload by its honeypot value
type Gate int

const (
	// GateMalformed means the honeypot key is missing from the payload
	GateMalformed Gate = iota
	// GateSuppressed means the honeypot was filled in, so the submitter is a bot
	GateSuppressed
	// GateCandidate means the honeypot is present and empty
	GateCandidate
)

func (g Gate) String() string {
	switch g {
	case GateMalformed:
		return "malformed"
	case GateSuppressed:
		return "suppressed"
	case GateCandidate:
		return "candidate"
	}
	return "unknown"
}

// Classify inspects the honeypot key of payload. A missing key wins over
// every other property of the payload; any non-empty value among repeated
// keys marks the payload as spam.
func Classify(payload url.Values) Gate {
	values, ok := payload[HoneypotName]
	if !ok || len(values) == 0 {
		return GateMalformed
	}
	for _, v := range values {
		if v != "" {
			return GateSuppressed
		}
	}
	return GateCandidate
}
