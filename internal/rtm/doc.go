// Package rtm decodes and validates Remember The Milk JSON exports.
//
// An export is a JSON object with three optional collections:
//
//	{
//	  "tasks": [
//	    {
//	      "id": "1",
//	      "name": "Buy milk",
//	      "list_id": "100",
//	      "series_id": "s1",
//	      "parent_id": null,
//	      "priority": "P1",
//	      "date_due": 1705276800000,
//	      "date_due_has_time": false,
//	      "date_created": 1705190400000,
//	      "tags": ["errands"]
//	    }
//	  ],
//	  "lists": [{"id": "100", "name": "Personal"}],
//	  "notes": [{"series_id": "s1", "content": "Semi-skimmed"}]
//	}
//
// # Tolerance
//
// A missing collection, or one that is not an array, decodes as empty. A record
// whose fields have the wrong JSON type is a hard error: the whole export is
// rejected and no partial result is returned.
//
// Identifiers may be JSON strings or numbers and are kept in their textual
// form. Timestamps are milliseconds since the Unix epoch; null and 0 mean
// "absent".
//
// # Priority Values
//
//   - "P1": high
//   - "P2": medium
//   - "P3": low
//   - anything else ("PN", null, unknown): no priority
//
// # Validation
//
// ValidateJSON checks raw export bytes against an embedded JSON Schema
// (draft 2020-12). It is stricter than decoding: non-array collections and
// records without an id are reported instead of being tolerated.
package rtm
