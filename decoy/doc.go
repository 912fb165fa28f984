// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package decoy implements the fake incoming-call overlay.

Four taps on the hidden trigger area, each less than 500ms after the
previous one, bring up a simulated call. A gap of 500ms or more starts the
count over at 1.

# Call States

	idle -> incoming     fourth rapid tap
	incoming -> connected  Accept (counter starts at 0)
	incoming|connected -> rejected  Reject
	rejected -> idle     one second later

Every Call reads time from a clockwork.Clock, so tests drive it with a fake
clock:

	clock := clockwork.NewFakeClock()
	call := decoy.NewCall(clock, "Mama")

# Sessions

Registry keeps one Call per browser session, keyed by KSUID. Run sweeps
sessions that have been unused for the TTL:

	reg := decoy.NewRegistry(clockwork.NewRealClock(), "Mama", decoy.DefaultSessionTTL)
	go reg.Run(ctx)
*/
package decoy
