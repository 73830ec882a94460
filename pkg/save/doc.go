// Package save drives save and load operations one tick at a time.
//
// An Orchestrator owns at most one operation. StartSave or StartLoad queues
// it up; each call to Update then advances it by exactly one step on the
// Backend (begin, write or read, close). When the last step finishes, or any
// step fails, the operation's Callback receives a single Success or Failure
// and the orchestrator returns to idle.
//
// A typical game loop:
//
//	o := save.New("mygame", storage.New(storage.WithRoot(dir)))
//	if err := o.StartSave(state, cb, "slot1.sav"); err != nil {
//	    // ErrAlreadyInProgress: try again once IsWorking is false
//	}
//	for frame := range frames {
//	    o.Update()
//	    o.Draw()
//	}
//
// The orchestrator is cooperative and not safe for concurrent use; all
// backend I/O happens inside Update on the caller's goroutine. An operation
// whose caller stops calling Update stays suspended with its resources held.
package save
