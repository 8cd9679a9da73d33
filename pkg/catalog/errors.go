package catalog

import "fmt"

type (
	RegistrationError struct {
		StatusCode int
		Message    string
	}

	ConnectionError struct {
		Message string
		Err     error
	}

	DecodingError struct {
		Message string
		Err     error
	}

	NotFoundError struct {
		AgentName string
	}
)

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to register agent: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to connect to catalog: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to connect to catalog: %s", e.Message)
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode catalog response: %s: %v", e.Message, e.Err)
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent not found: %s", e.AgentName)
}
