// Package cursor implements the client-side find cursors of the SDK:
// lazily-paginated, resumable result sequences over the Data API's
// find, table find and findAndRerank commands.
//
// One generic Cursor[R, T] state machine serves all three command
// shapes; the variant-specific wire payloads and response decoding live
// in small query-engine strategies selected at construction. R is the
// raw item type decoded from the wire, T the item type after the
// optional mapping chain (R == T until Map is applied).
//
// Cursors buffer one page of results locally and refill the buffer one
// page at a time while being consumed:
//
//	cur := collection.Find(map[string]any{"kind": "event"})
//	for {
//	    doc, ok, err := cur.Next(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if !ok {
//	        break
//	    }
//	    // use doc
//	}
//
// A cursor is not safe for concurrent use by multiple goroutines.
package cursor
