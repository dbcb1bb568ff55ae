// Package forge composes outbound requests for the UT web and mobile API.
//
// A Factory binds a Settings selection (persona and platform) to a
// transport. Each logical API call gets its own Forge, configured through
// chained builder calls and consumed by one terminal operation:
//
//	settings := forge.DefaultSettings()
//	f := forge.NewFactory(settings, transport)
//
//	resp, err := f.Forge("get", "/ut/game/fifa/user/credits").
//	    SetSessionID(sid).
//	    SetPhishingToken(token).
//	    Body(ctx)
//
// Building snapshots the builder, resolves the transmitted method (the
// Mobile persona sends its method override as the real verb), asks the
// transport for a request, encodes the body, then composes headers.
//
// Transport errors are returned unchanged. There is no retry.
package forge
