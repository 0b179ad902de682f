package domain

// Target is a named, independently invocable unit of work mapped to an
// ordered sequence of shell command lines.
//
// A phony target does not correspond to a produced file and runs
// unconditionally. A non-phony target declares the files it produces in
// Outputs, which the runner uses for its up-to-date check.
type Target struct {
	Name          InternedString
	Commands      []string
	Prerequisites []InternedString
	Outputs       []InternedString
	Environment   map[string]string
	WorkingDir    InternedString
	Phony         bool
}
