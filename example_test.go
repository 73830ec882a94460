package gamesave_test

import (
	"fmt"
	"os"

	"github.com/bft-labs/gamesave"
	"github.com/bft-labs/gamesave/pkg/platform"
)

// ExampleOpen shows a save followed by a load, one Update per frame.
func ExampleOpen() {
	root, err := os.MkdirTemp("", "gamesave-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(root)

	s, err := gamesave.Open(gamesave.Config{Folder: "mygame", Root: root, Platform: platform.Host()})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer s.Close()

	cb := gamesave.CallbackFuncs{
		Save: func(r gamesave.Result) { fmt.Println("save:", r) },
		Load: func(r gamesave.Result) { fmt.Println("load:", r) },
	}

	if err := s.StartSave([]byte{1, 2, 3, 4}, cb, "slot1.sav"); err != nil {
		fmt.Println(err)
		return
	}
	for s.IsWorking() {
		s.Update()
	}

	var state []byte
	if err := s.StartLoad(&state, cb, "slot1.sav"); err != nil {
		fmt.Println(err)
		return
	}
	for s.IsWorking() {
		s.Update()
	}
	fmt.Println(state)

	// Output:
	// save: Success
	// load: Success
	// [1 2 3 4]
}
