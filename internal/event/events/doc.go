// Package events is the master list of event identifiers known to evbind,
// together with their payload types.
//
// Every identifier belongs to Space. Producers and consumers declared with
// the binding package must use identifiers from this list, so the complete
// set of events is discoverable in one place:
//
//   - Post events: created, edited, closed, deleted
//
// # Usage
//
// Producers declare a slot for an identifier, consumers declare a function
// handling one or more identifiers:
//
//	scope := binding.NewScope(events.Space)
//
//	binding.Event(scope.Container("Post"), "Edited", events.PostEdited, &svc.Events.Edited)
//	binding.Handles(scope.Container("Program"), "PostEdited",
//	    func(p *post.Post, args events.EditedArgs) error {
//	        fmt.Println(args.OldTitle, "->", p.Title)
//	        return nil
//	    },
//	    events.PostEdited,
//	)
//
// # Identifier Naming Convention
//
// Identifiers follow a dot-notation of owner then event name:
//
//	post.created
//	post.edited
//
// Events without a payload use handlers.Empty as their argument type.
package events
