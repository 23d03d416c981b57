package cursor

import (
	"context"
	"errors"
	"testing"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/types"
)

// fakeCommander records payloads and replays scripted responses.
type fakeCommander struct {
	payloads  []map[string]any
	responses []map[string]any
}

func (f *fakeCommander) Request(_ context.Context, payload map[string]any, _ api.TimeoutContext) (map[string]any, error) {
	f.payloads = append(f.payloads, payload)
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

type commanderSource struct {
	name      string
	commander api.Commander
}

func (s commanderSource) Name() string             { return s.name }
func (s commanderSource) Commander() api.Commander { return s.commander }

func emptyFindResponse() map[string]any {
	return map[string]any{
		"data": map[string]any{
			"documents":     []any{},
			"nextPageState": nil,
		},
	}
}

// TestDocumentEnginePayload verifies the assembled find command carries
// the configured criteria and options
func TestDocumentEnginePayload(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{emptyFindResponse()}}
	src := commanderSource{name: "events", commander: cmd}
	skip := 4
	includeSimilarity := true
	engine := newDocumentEngine(src, Params{
		Filter:            map[string]any{"kind": "event"},
		Projection:        []string{"kind", "when"},
		Sort:              map[string]any{"when": 1},
		Limit:             25,
		Skip:              &skip,
		IncludeSimilarity: &includeSimilarity,
	})

	if _, err := engine.fetchPage(context.Background(), nil, api.TimeoutContext{}); err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}

	body, ok := cmd.payloads[0]["find"].(map[string]any)
	if !ok {
		t.Fatalf("payload = %v, want a find command", cmd.payloads[0])
	}
	if filter := body["filter"].(map[string]any); filter["kind"] != "event" {
		t.Errorf("filter = %v, want kind=event", filter)
	}
	projection := body["projection"].(map[string]any)
	if projection["kind"] != true || projection["when"] != true {
		t.Errorf("projection = %v, want kind and when included", projection)
	}
	options := body["options"].(map[string]any)
	if options["limit"] != 25 {
		t.Errorf("options.limit = %v, want 25", options["limit"])
	}
	if options["skip"] != 4 {
		t.Errorf("options.skip = %v, want 4", options["skip"])
	}
	if options["includeSimilarity"] != true {
		t.Errorf("options.includeSimilarity = %v, want true", options["includeSimilarity"])
	}
	if _, present := options["pageState"]; present {
		t.Error("first fetch should carry no pageState")
	}
}

// TestDocumentEnginePayload_Defaults verifies zero-valued knobs are
// omitted from the wire payload
func TestDocumentEnginePayload_Defaults(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{emptyFindResponse()}}
	src := commanderSource{name: "events", commander: cmd}
	engine := newDocumentEngine(src, Params{})

	if _, err := engine.fetchPage(context.Background(), nil, api.TimeoutContext{}); err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}

	body := cmd.payloads[0]["find"].(map[string]any)
	for _, key := range []string{"filter", "projection", "sort"} {
		if _, present := body[key]; present {
			t.Errorf("payload should omit empty %s", key)
		}
	}
	options := body["options"].(map[string]any)
	if _, present := options["limit"]; present {
		t.Error("a zero limit should be omitted from options")
	}
	if _, present := options["skip"]; present {
		t.Error("an unset skip should be omitted from options")
	}
}

// TestEnginePageState verifies continuation fetches carry the page state
func TestEnginePageState(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{emptyFindResponse()}}
	src := commanderSource{name: "events", commander: cmd}
	engine := newDocumentEngine(src, Params{})

	pageState := "state-xyz"
	if _, err := engine.fetchPage(context.Background(), &pageState, api.TimeoutContext{}); err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}
	options := cmd.payloads[0]["find"].(map[string]any)["options"].(map[string]any)
	if options["pageState"] != "state-xyz" {
		t.Errorf("options.pageState = %v, want state-xyz", options["pageState"])
	}
}

// TestEngineMalformedResponses verifies envelope violations surface as
// ResponseError
func TestEngineMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		resp map[string]any
	}{
		{"no data", map[string]any{"status": map[string]any{}}},
		{"no documents", map[string]any{"data": map[string]any{"nextPageState": nil}}},
		{"no nextPageState", map[string]any{"data": map[string]any{"documents": []any{}}}},
		{"non-object document", map[string]any{"data": map[string]any{
			"documents":     []any{"not-an-object"},
			"nextPageState": nil,
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &fakeCommander{responses: []map[string]any{tt.resp}}
			engine := newDocumentEngine(commanderSource{name: "events", commander: cmd}, Params{})
			_, err := engine.fetchPage(context.Background(), nil, api.TimeoutContext{})
			var re *api.ResponseError
			if !errors.As(err, &re) {
				t.Errorf("fetchPage() error = %T, want *ResponseError", err)
			}
		})
	}
}

// TestEngineMissingDataSource verifies a cursor without a source fails
// its fetches with the dedicated error
func TestEngineMissingDataSource(t *testing.T) {
	engine := newDocumentEngine(nil, Params{})
	_, err := engine.fetchPage(context.Background(), nil, api.TimeoutContext{})
	if !errors.Is(err, ErrMissingDataSource) {
		t.Errorf("fetchPage() error = %v, want ErrMissingDataSource", err)
	}
}

// TestHybridEnginePayload verifies the findAndRerank command shape
func TestHybridEnginePayload(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{{
		"data": map[string]any{
			"documents":     []any{},
			"nextPageState": nil,
		},
		"status": map[string]any{"documentResponses": []any{}},
	}}}
	src := commanderSource{name: "articles", commander: cmd}
	skip := 2
	includeScores := true
	engine := newHybridEngine(src, Params{
		Filter:           map[string]any{"lang": "en"},
		Sort:             map[string]any{"$hybrid": "query text"},
		Limit:            10,
		Skip:             &skip,
		RerankOn:         "summary",
		RerankQuery:      "rerank text",
		HybridLimits:     20,
		HybridProjection: []string{"title"},
		IncludeScores:    &includeScores,
	})

	if _, err := engine.fetchPage(context.Background(), nil, api.TimeoutContext{}); err != nil {
		t.Fatalf("fetchPage() error = %v", err)
	}

	body, ok := cmd.payloads[0]["findAndRerank"].(map[string]any)
	if !ok {
		t.Fatalf("payload = %v, want a findAndRerank command", cmd.payloads[0])
	}
	projection := body["projection"].(map[string]any)
	if projection["title"] != true {
		t.Errorf("projection = %v, want title included", projection)
	}
	options := body["options"].(map[string]any)
	if options["rerankOn"] != "summary" {
		t.Errorf("options.rerankOn = %v, want summary", options["rerankOn"])
	}
	if options["rerankQuery"] != "rerank text" {
		t.Errorf("options.rerankQuery = %v, want rerank text", options["rerankQuery"])
	}
	if options["hybridLimits"] != 20 {
		t.Errorf("options.hybridLimits = %v, want 20", options["hybridLimits"])
	}
	if options["includeScores"] != true {
		t.Errorf("options.includeScores = %v, want true", options["includeScores"])
	}
	if _, present := options["skip"]; present {
		t.Error("findAndRerank has no skip; it should be omitted")
	}
}

// TestNormalizeProjection verifies the accepted projection shorthands
func TestNormalizeProjection(t *testing.T) {
	if got := normalizeProjection(nil); got != nil {
		t.Errorf("normalizeProjection(nil) = %v, want nil", got)
	}

	fromList := normalizeProjection([]string{"a", "b"}).(map[string]any)
	if fromList["a"] != true || fromList["b"] != true {
		t.Errorf("normalizeProjection(list) = %v, want all-inclusions", fromList)
	}

	fromBools := normalizeProjection(map[string]bool{"a": true, "_id": false}).(map[string]any)
	if fromBools["a"] != true || fromBools["_id"] != false {
		t.Errorf("normalizeProjection(bool map) = %v, want widened map", fromBools)
	}

	wire := map[string]any{"a": map[string]any{"$slice": 2}}
	if got := normalizeProjection(wire).(map[string]any); got["a"] == nil {
		t.Errorf("normalizeProjection(wire map) = %v, want pass-through", got)
	}
}

// TestCursorMalformedResponse verifies a malformed page leaves the
// cursor's retrieval progress untouched and a retry can succeed
func TestCursorMalformedResponse(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{
		{"data": map[string]any{"documents": []any{map[string]any{"_id": "a"}}}},
		{"data": map[string]any{
			"documents":     []any{map[string]any{"_id": "a"}},
			"nextPageState": nil,
		}},
	}}
	c := NewDocumentCursor(commanderSource{name: "events", commander: cmd}, Params{}, Options{})
	ctx := context.Background()

	_, _, err := c.Next(ctx)
	var re *api.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("Next() over malformed page error = %T, want *ResponseError", err)
	}
	if c.PagesRetrieved() != 0 {
		t.Errorf("PagesRetrieved() after malformed page = %d, want 0", c.PagesRetrieved())
	}
	if c.State() != StateIdle {
		t.Errorf("State() after malformed page = %v, want %v", c.State(), StateIdle)
	}

	doc, ok, err := c.Next(ctx)
	if err != nil || !ok {
		t.Fatalf("Next() retry = (%v, %v)", ok, err)
	}
	if doc["_id"] != "a" {
		t.Errorf("retried document _id = %v, want a", doc["_id"])
	}
}

// TestMappedCursorOverEngine verifies the full path from wire documents
// through a mapping chain
func TestMappedCursorOverEngine(t *testing.T) {
	cmd := &fakeCommander{responses: []map[string]any{{
		"data": map[string]any{
			"documents":     []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
			"nextPageState": nil,
		},
	}}}
	src := commanderSource{name: "events", commander: cmd}
	c := NewDocumentCursor(src, Params{}, Options{})

	names, err := Map(c, func(doc types.Document) string { return doc["name"].(string) })
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	got, err := names.ToList(context.Background())
	if err != nil {
		t.Fatalf("ToList() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ToList() = %v, want [a b]", got)
	}
}
