// Package lumen is a Go client for the Lumen Data API.
//
// A Client is configured once and hands out Database, Collection and
// Table handles, which are cheap stateless views; the network work
// happens in the cursors they return:
//
//	cfg := config.New("https://db.example.com", "app-token")
//	client, err := lumen.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	events := client.Database().Collection("events")
//	cur := events.Find(map[string]any{"kind": "signup"})
//	docs, err := cur.ToList(ctx)
//
// See the cursor package for the iteration, mapping and pagination
// facilities of the returned cursors.
package lumen
