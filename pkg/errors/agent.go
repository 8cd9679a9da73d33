package errors

type ErrMissingTaskStore struct{}

func (e ErrMissingTaskStore) Error() string {
	return "task manager requires a task store"
}

type ErrMissingProvider struct{}

func (e ErrMissingProvider) Error() string {
	return "agent requires an LLM provider"
}

type ErrMissingAgentCard struct{}

func (e ErrMissingAgentCard) Error() string {
	return "agent requires an agent card"
}
