package save

// Backend performs the file I/O for one step of an operation at a time.
//
// Every step method returns true when its step is complete. A step that
// returns false with ErrorOccurred() true has failed; one that returns false
// without an error is still working and will be called again on the next
// Update. Implementations must set the error before returning false on any
// real failure.
type Backend interface {
	// InitSave prepares a save of data to folder/filename and clears any
	// previous error. The backend may keep data until Release.
	InitSave(folder, filename string, data []byte)

	// InitLoad prepares a load of folder/filename into dst and clears any
	// previous error. dst is written at most once, on success.
	InitLoad(folder, filename string, dst *[]byte)

	// SaveBegin creates the folder if needed and opens the file for writing.
	SaveBegin() bool
	// SaveUpdate writes the header and payload.
	SaveUpdate() bool
	// SaveEnd closes the file.
	SaveEnd() bool

	// LoadBegin opens the file and measures it.
	LoadBegin() bool
	// LoadUpdate reads, de-obfuscates and validates the file.
	LoadUpdate() bool
	// LoadEnd closes the file.
	LoadEnd() bool

	// ErrorOccurred reports whether a step has failed since the last Init.
	ErrorOccurred() bool
	// SetError records err as the failure cause.
	SetError(err error)
	// Err returns the recorded failure cause, or nil.
	Err() error

	// Draw renders any progress indicator.
	Draw()

	// Release closes any open handle and drops buffers. It is safe to call
	// at any time and more than once.
	Release()
}
