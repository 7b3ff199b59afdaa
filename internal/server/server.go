package server

type Server interface {
	// Handle solves a JSON session body, returning the HTTP status and the
	// payload to encode.
	Handle(body []byte, candidates bool) (int, interface{})

	// Run serves the API on address until it fails.
	Run(address string) error
}
