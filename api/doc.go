// Package api implements the wire-level collaborator of the SDK: the
// Commander, which sends one JSON command to the Data API and returns
// one decoded JSON response, and the time-budget machinery that caps
// each of those exchanges.
//
// Cursors never talk HTTP themselves; they hold a Commander and hand it
// one payload per page together with a TimeoutContext derived from
// their Budget.
package api
