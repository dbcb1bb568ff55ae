package compose

import (
	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/profile"
)

// ComposeHeaders applies the header rules of p and the caller overrides
// recorded in d onto req.Header.
func ComposeHeaders(req *domain.Request, p profile.Profile, d domain.Draft) {
	applyRules(req, p.Mandatory, d)

	if !d.SuppressPersonaHeaders {
		applyRules(req, p.Defaults, d)
	}

	for _, h := range d.AddedHeaders {
		req.Header.Del(h.Key)
		req.Header.Set(h.Key, h.Value)
	}

	applyRules(req, profile.Protocol(), d)

	for _, name := range d.RemovedHeaders {
		req.Header.Del(name)
	}
}

func applyRules(req *domain.Request, rules []profile.Rule, d domain.Draft) {
	for _, r := range rules {
		if v, ok := r.Eval(d); ok {
			req.Header.Set(r.Name, v)
		}
	}
}
