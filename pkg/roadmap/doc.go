// Package roadmap defines the document rendered by Highweigh: projects,
// their epics, date-bounded bars and point milestones, laid out over a
// window of calendar months.
//
// Documents are usually decoded from a file with [Read] or [Decode]:
//
//	doc, err := roadmap.Decode(data, roadmap.FormatYAML)
//	if err != nil {
//	    return err // report the load failure, do not render
//	}
//
// All supported encodings (JSON, YAML, TOML, and BSON through the Mongo
// source) share one wire shape:
//
//	{
//	  "title": "Platform",
//	  "lastUpdated": "2024-03-01",
//	  "startMonth": "2024-1",
//	  "months": 6,
//	  "projects": [{
//	    "name": "Search",
//	    "rag": "amber",
//	    "bars": [{"type": "build", "start": "2024-1-8", "stop": "2024-3-15"}],
//	    "milestones": {"2024-3-15": "launch"},
//	    "epics": [{"name": "Indexer"}]
//	  }]
//	}
//
// Dates are pure calendar triples. There is no time of day and no zone.
package roadmap
