package rules

import "strings"

// Settings carries the tunable thresholds. The source standards flag the
// exact limits as unsettled, so they come from configuration instead of
// being baked into the rule bodies.
type Settings struct {
	Disabled      map[string]bool
	SubjectMaxLen int
	BodyWrapLimit int
}

var rsettings = Settings{
	Disabled:      map[string]bool{},
	SubjectMaxLen: 50,
	BodyWrapLimit: 72,
}

func SetSettings(s Settings) {
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	} else {
		norm := make(map[string]bool, len(s.Disabled))
		for id, v := range s.Disabled {
			norm[strings.ToLower(strings.TrimSpace(id))] = v
		}
		s.Disabled = norm
	}
	if s.SubjectMaxLen == 0 {
		s.SubjectMaxLen = rsettings.SubjectMaxLen
	}
	if s.BodyWrapLimit == 0 {
		s.BodyWrapLimit = rsettings.BodyWrapLimit
	}
	rsettings = s
}
