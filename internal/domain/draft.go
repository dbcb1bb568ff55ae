package domain

// Draft is an immutable snapshot of a forge's accumulated state. Header
// rules and the body encoder read from it and never from the live builder.
type Draft struct {
	Method         string
	MethodOverride string
	URL            string

	Body        any
	RawJSONBody bool

	AddedHeaders   Header
	RemovedHeaders []string

	SessionID     string
	ProofOfWorkID string
	PhishingToken string
	NucleusID     string
	Route         string

	SuppressPersonaHeaders bool
}

// Clone returns a copy whose header collections do not alias d's.
func (d Draft) Clone() Draft {
	d.AddedHeaders = d.AddedHeaders.Clone()
	if d.RemovedHeaders != nil {
		d.RemovedHeaders = append([]string(nil), d.RemovedHeaders...)
	}
	return d
}

// EffectiveMethod is the method the request is actually transmitted with.
// Only the Mobile persona sends its override as the real verb; WebApp
// carries it in a header instead.
func (d Draft) EffectiveMethod(p Persona) string {
	if p == Mobile && d.MethodOverride != "" {
		return d.MethodOverride
	}
	return d.Method
}
