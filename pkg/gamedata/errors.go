package gamedata

import "fmt"

// NotFoundError indicates a game identifier that does not resolve to any
// record at the data provider.
type NotFoundError struct {
	GameID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("game %d not found", e.GameID)
}

// ExternalServiceError wraps network, HTTP, rate-limit and auth failures
// from the data provider. A 2xx response with an empty or malformed body is
// reported the same way, since the caller cannot distinguish the two.
type ExternalServiceError struct {
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("game data service failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("game data service unreachable: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
